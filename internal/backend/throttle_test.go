package backend

import (
	"testing"
	"time"
)

func TestThrottleGrantsFirstCall(t *testing.T) {
	th := newThrottle(50 * time.Millisecond)
	if !th.allow() {
		t.Fatalf("first call should be granted")
	}
}

func TestThrottleCollapsesBursts(t *testing.T) {
	th := newThrottle(time.Minute)
	if !th.allow() {
		t.Fatalf("first call should be granted")
	}
	for i := 0; i < 5; i++ {
		if th.allow() {
			t.Fatalf("burst call %d should be denied", i)
		}
	}
}

func TestThrottleGrantsAfterInterval(t *testing.T) {
	th := newThrottle(10 * time.Millisecond)
	if !th.allow() {
		t.Fatalf("first call should be granted")
	}
	time.Sleep(25 * time.Millisecond)
	if !th.allow() {
		t.Fatalf("call after the interval should be granted")
	}
}

func TestThrottleZeroIntervalAlwaysGrants(t *testing.T) {
	th := newThrottle(0)
	for i := 0; i < 3; i++ {
		if !th.allow() {
			t.Fatalf("zero interval should never deny")
		}
	}
}
