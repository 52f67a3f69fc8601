package tour

import (
	"github.com/chewxy/math32"

	"github.com/jupdesignstudio/VirtuShot/pkg/config"
	"github.com/jupdesignstudio/VirtuShot/pkg/geom"
)

// spotAt 在球面上按角度（度）放置热点
func spotAt(yawDeg, pitchDeg float32) geom.Vec3 {
	yaw := yawDeg * math32.Pi / 180
	pitch := pitchDeg * math32.Pi / 180
	return geom.DirFromAngles(yaw, pitch).Scale(config.SphereRadius)
}

// NewSample 构造内置示例漫游：三个互相链接的程序化全景场景。
// 首次启动（存储为空）时由加载画面种入，让应用开箱即有内容。
func NewSample() *Tour {
	t := New("Sample Pavilion")
	t.ID = "tour-sample"

	hall := &Scene{
		ID:         "scn-hall",
		Name:       "Entrance Hall",
		TextureRef: "placeholder:hall",
		InitialYaw: 0,
	}
	exhibit := &Scene{
		ID:         "scn-exhibit",
		Name:       "Exhibit Room",
		TextureRef: "placeholder:exhibit",
		InitialYaw: 180,
	}
	roof := &Scene{
		ID:         "scn-roof",
		Name:       "Roof Terrace",
		TextureRef: "placeholder:roof",
		InitialYaw: 90,
	}

	hall.AddHotspot(&Hotspot{
		ID:       "hs-hall-exhibit",
		Position: spotAt(35, -6),
		TargetID: exhibit.ID,
		Color:    "#4fc3f7",
	})
	hall.AddHotspot(&Hotspot{
		ID:       "hs-hall-roof",
		Position: spotAt(-50, 14),
		TargetID: roof.ID,
		Label:    "Up to the roof",
		Color:    "#ffb74d",
	})
	exhibit.AddHotspot(&Hotspot{
		ID:       "hs-exhibit-hall",
		Position: spotAt(200, -4),
		TargetID: hall.ID,
		Color:    "#4fc3f7",
	})
	roof.AddHotspot(&Hotspot{
		ID:       "hs-roof-hall",
		Position: spotAt(120, -10),
		TargetID: hall.ID,
		Label:    "Back to the hall",
		Color:    "#81c784",
	})

	t.AddScene(hall)
	t.AddScene(exhibit)
	t.AddScene(roof)
	t.StartID = hall.ID
	return t
}
