package runtime

import "testing"

func TestCallFrameLookupDoesNotFallThrough(t *testing.T) {
	parent := NewFrame(CallFrame, nil, "outer")
	parent.Define("x", NewString("outer-x"))
	child := NewFrame(CallFrame, parent, "inner")
	if _, ok := child.Lookup("x"); ok {
		t.Fatal("CallFrame should not see its parent's locals")
	}
}

func TestBlockFrameLookupFallsThrough(t *testing.T) {
	parent := NewFrame(CallFrame, nil, "outer")
	parent.Define("x", NewString("outer-x"))
	child := NewFrame(BlockFrame, parent, "inner")
	v, ok := child.Lookup("x")
	if !ok || v.String() != "outer-x" {
		t.Fatalf("BlockFrame lookup = %v, %v", v, ok)
	}
}

func TestBlockFrameAssignUpdatesNearestExisting(t *testing.T) {
	parent := NewFrame(CallFrame, nil, "outer")
	parent.Define("x", NewString("1"))
	child := NewFrame(BlockFrame, parent, "inner")
	child.Assign("x", NewString("2"))
	if v, _ := parent.Lookup("x"); v.String() != "2" {
		t.Fatalf("parent.x = %v, want 2", v)
	}
	if _, ok := child.Locals["x"]; ok {
		t.Fatal("assign should not have created a shadow local")
	}
}

func TestBlockFrameAssignCreatesLocalWhenNoneExists(t *testing.T) {
	parent := NewFrame(CallFrame, nil, "outer")
	child := NewFrame(BlockFrame, parent, "inner")
	child.Assign("y", NewString("1"))
	if _, ok := parent.Locals["y"]; ok {
		t.Fatal("assign should not have leaked into parent")
	}
	if v, ok := child.Locals["y"]; !ok || v.String() != "1" {
		t.Fatalf("child.y = %v, %v", v, ok)
	}
}

func TestSetDoneCascadesToEnclosingCallFrame(t *testing.T) {
	call := NewFrame(CallFrame, nil, "fn")
	block := NewFrame(BlockFrame, call, "body")
	loop := NewFrame(LoopFrame, block, "loop")

	loop.SetDone(NewString("42"))

	if call.State != Done || call.ReturnValue.String() != "42" {
		t.Fatalf("call frame not marked done: %v %v", call.State, call.ReturnValue)
	}
	if block.State != Done {
		t.Fatal("block frame should also be marked done on the way up")
	}
}

func TestSetBreakStopsAtLoopFrame(t *testing.T) {
	call := NewFrame(CallFrame, nil, "fn")
	loop := NewFrame(LoopFrame, call, "loop")
	loop.SetBreak()
	if loop.State != Break {
		t.Fatalf("loop.State = %v, want Break", loop.State)
	}
	if call.State != Running {
		t.Fatal("break should not propagate past its loop frame")
	}
}
