package particle

import "github.com/plus3/ember/persist"

// PutVec3 writes v into rec as <prefix>_x, <prefix>_y and <prefix>_z.
func PutVec3(rec persist.Record, prefix string, v Vec3) persist.Record {
	return rec.Set(prefix+"_x", v.X).Set(prefix+"_y", v.Y).Set(prefix+"_z", v.Z)
}

// ReadVec3 reads a vector written by PutVec3.
func ReadVec3(rd *persist.Reader, prefix string) Vec3 {
	return Vec3{X: rd.Float(prefix + "_x"), Y: rd.Float(prefix + "_y"), Z: rd.Float(prefix + "_z")}
}

// PutColor writes c into rec as <prefix>_r, _g, _b and _a.
func PutColor(rec persist.Record, prefix string, c Color) persist.Record {
	return rec.Set(prefix+"_r", c.R).Set(prefix+"_g", c.G).Set(prefix+"_b", c.B).Set(prefix+"_a", c.A)
}

// ReadColor reads a color written by PutColor.
func ReadColor(rd *persist.Reader, prefix string) Color {
	return Color{
		R: rd.Float(prefix + "_r"),
		G: rd.Float(prefix + "_g"),
		B: rd.Float(prefix + "_b"),
		A: rd.Float(prefix + "_a"),
	}
}
