package helper

import "testing"

type caller struct{}

func (c *caller) name() string { return GetFuncName() }

func TestGetFuncName(t *testing.T) {
	if got := GetFuncName(); got != "TestGetFuncName" {
		t.Errorf("GetFuncName() = %q, want TestGetFuncName", got)
	}
	if got := (&caller{}).name(); got != "(*caller).name" {
		t.Errorf("GetFuncName() = %q, want (*caller).name", got)
	}
}
