package math

import (
	"testing"
)

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	got := x.Cross(y)
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3Normalize(t *testing.T) {
	n := Vec3{3, 4, 0}.Normalize()
	l := n.Length()
	if l < 0.999 || l > 1.001 {
		t.Errorf("Vec3.Normalize().Length() = %v, want ~1", l)
	}
	if (Vec3{}).Normalize() != (Vec3{}) {
		t.Error("zero vector should normalize to zero")
	}
}

func TestVec3MirrorZ(t *testing.T) {
	v := Vec3{1, 2, 3}
	got := v.MirrorZ()
	if got != (Vec3{1, 2, -3}) {
		t.Errorf("MirrorZ() = %v", got)
	}
	if got.MirrorZ() != v {
		t.Error("mirroring twice should be the identity")
	}
}

func TestVec3Lerp(t *testing.T) {
	a := Vec3{0, 0, 0}
	b := Vec3{4, 8, -4}
	if got := a.Lerp(b, 0.25); got != (Vec3{1, 2, -1}) {
		t.Errorf("Lerp(0.25) = %v", got)
	}
}

func TestVec3IsFinite(t *testing.T) {
	if !(Vec3{1, 2, 3}).IsFinite() {
		t.Error("expected finite vector")
	}
	var zero float32
	nan := zero / zero
	if (Vec3{nan, 0, 0}).IsFinite() {
		t.Error("NaN component should not be finite")
	}
}
