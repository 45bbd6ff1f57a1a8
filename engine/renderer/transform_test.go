package renderer

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-raster/common"
	"github.com/Carmen-Shannon/oxy-raster/engine/model"
)

func nearVec3(a, b common.Vec3) bool {
	for i := range a {
		if math.Abs(float64(a[i]-b[i])) > 1e-4 {
			return false
		}
	}
	return true
}

func identityUniforms(w, h float32) Uniforms {
	return Uniforms{
		Model:      common.Identity4(),
		View:       common.Identity4(),
		Projection: common.Identity4(),
		Viewport:   common.Viewport(w, h),
	}
}

func TestTransformVertexViewport(t *testing.T) {
	u := identityUniforms(100, 100)
	tests := []struct {
		in, want common.Vec3
	}{
		{common.V3(0, 0, 0.5), common.V3(50, 50, 0.5)},
		{common.V3(0.5, 0.5, 0), common.V3(75, 25, 0)},
		{common.V3(-1, -1, -1), common.V3(0, 100, -1)},
	}
	for _, tc := range tests {
		v, ok := TransformVertex(model.NewVertex(tc.in, common.V3(0, 0, 1), common.Vec2{}), u)
		if !ok {
			t.Fatal("identity model reported degraded")
		}
		if !nearVec3(v.TransformedPosition, tc.want) {
			t.Errorf("TransformVertex(%v) = %v, want %v", tc.in, v.TransformedPosition, tc.want)
		}
		if v.Position != tc.in {
			t.Errorf("object-space position modified: %v", v.Position)
		}
	}
}

func TestTransformVertexPerspective(t *testing.T) {
	u := Uniforms{
		Model:      common.Identity4(),
		View:       common.LookAt(common.V3(0, 0, 5), common.Vec3{}, common.V3(0, 1, 0)),
		Projection: common.Perspective(common.Radians(45), 1, 0.1, 1000),
		Viewport:   common.Viewport(100, 100),
	}
	v, _ := TransformVertex(model.NewVertex(common.V3(1, 0, 0), common.V3(0, 0, 1), common.Vec2{}), u)
	f := 1 / math.Tan(math.Pi/8)
	wantX := float32(50 + 50*f/5)
	if math.Abs(float64(v.TransformedPosition[0]-wantX)) > 1e-3 {
		t.Errorf("x = %v, want %v", v.TransformedPosition[0], wantX)
	}
	if z := v.TransformedPosition[2]; z <= -1 || z >= 1 {
		t.Errorf("depth %v outside NDC range", z)
	}
}

func TestTransformVertexBehindEye(t *testing.T) {
	u := Uniforms{
		Model:      common.Identity4(),
		View:       common.Identity4(),
		Projection: common.Perspective(common.Radians(45), 1, 0.1, 1000),
		Viewport:   common.Viewport(100, 100),
	}
	v, _ := TransformVertex(model.NewVertex(common.V3(0, 0, 1), common.V3(0, 0, 1), common.Vec2{}), u)
	if v.TransformedPosition.IsFinite() {
		t.Errorf("vertex behind the eye produced %v", v.TransformedPosition)
	}
}

func TestTransformVertexNormals(t *testing.T) {
	tests := []struct {
		name       string
		model      common.Mat4
		normal     common.Vec3
		want       common.Vec3
		wantDegrad bool
	}{
		{"identity", common.Identity4(), common.V3(0, 1, 0), common.V3(0, 1, 0), false},
		{"rotation", common.ModelMatrix(common.Vec3{}, 1, common.V3(0, 0, math.Pi/2)), common.V3(1, 0, 0), common.V3(0, 1, 0), false},
		{"non-uniform scale", common.Mat4{2, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}, common.V3(1, 1, 0), common.V3(0.5, 1, 0), false},
		{"singular", common.ModelMatrix(common.Vec3{}, 0, common.Vec3{}), common.V3(0.3, 0.4, 0.5), common.V3(0.3, 0.4, 0.5), true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			u := identityUniforms(10, 10)
			u.Model = tc.model
			v, ok := TransformVertex(model.NewVertex(common.Vec3{}, tc.normal, common.Vec2{}), u)
			if ok == tc.wantDegrad {
				t.Errorf("ok = %v, want %v", ok, !tc.wantDegrad)
			}
			if !nearVec3(v.TransformedNormal, tc.want) {
				t.Errorf("normal = %v, want %v", v.TransformedNormal, tc.want)
			}
		})
	}
}

func TestAssembleTriangles(t *testing.T) {
	vs := make([]model.Vertex, 0, 8)
	for i := range 8 {
		vs = append(vs, model.NewVertex(common.V3(float32(i), 0, 0), common.Vec3{}, common.Vec2{}))
	}
	var got [][3]float32
	for tri := range AssembleTriangles(vs) {
		got = append(got, [3]float32{tri[0].Position[0], tri[1].Position[0], tri[2].Position[0]})
	}
	want := [][3]float32{{0, 1, 2}, {3, 4, 5}}
	if len(got) != len(want) {
		t.Fatalf("got %d triangles, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("triangle %d = %v, want %v", i, got[i], want[i])
		}
	}
}
