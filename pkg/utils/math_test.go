package utils

import "testing"

func TestClamp(t *testing.T) {
	if Clamp(5, 1, 3) != 3 || Clamp(-2, 1, 3) != 1 || Clamp(2, 1, 3) != 2 {
		t.Errorf("Clamp() returned a value outside [1, 3]")
	}
	if ClampF(1.5, 0, 1) != 1 || ClampF(-0.5, 0, 1) != 0 || ClampF(0.25, 0, 1) != 0.25 {
		t.Errorf("ClampF() returned a value outside [0, 1]")
	}
}
