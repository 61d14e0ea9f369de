package domain

import "testing"

func TestFocusMode_Allows(t *testing.T) {
	tests := []struct {
		name   string
		mode   FocusMode
		cmd    FocusCommand
		expect bool
	}{
		// From idle
		{"idle start", ModeIdle, StartFocus{}, true},
		{"idle tick", ModeIdle, Tick{}, false},
		{"idle play", ModeIdle, Play{}, false},
		{"idle clear", ModeIdle, ClearFocus{}, false},

		// From work_running
		{"work_running pause", ModeWorkRunning, Pause{}, true},
		{"work_running tick", ModeWorkRunning, Tick{}, true},
		{"work_running play", ModeWorkRunning, Play{}, false},
		{"work_running skip", ModeWorkRunning, SkipSession{}, true},
		{"work_running skip-break", ModeWorkRunning, SkipBreak{}, false},

		// From work_paused
		{"work_paused play", ModeWorkPaused, Play{}, true},
		{"work_paused tick", ModeWorkPaused, Tick{}, false},
		{"work_paused skip", ModeWorkPaused, SkipSession{}, true},

		// From break_running
		{"break_running skip-break", ModeBreakRunning, SkipBreak{}, true},
		{"break_running skip", ModeBreakRunning, SkipSession{}, false},
		{"break_running pause", ModeBreakRunning, Pause{}, true},

		// From break_paused
		{"break_paused play", ModeBreakPaused, Play{}, true},
		{"break_paused skip-break", ModeBreakPaused, SkipBreak{}, true},

		// From all_complete (terminal)
		{"all_complete tick", ModeAllComplete, Tick{}, false},
		{"all_complete play", ModeAllComplete, Play{}, false},
		{"all_complete skip", ModeAllComplete, SkipSession{}, false},
		{"all_complete complete", ModeAllComplete, CompleteFocus{}, true},
		{"all_complete abandon", ModeAllComplete, AbandonFocus{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.mode.Allows(tt.cmd)
			if got != tt.expect {
				t.Errorf("%s.Allows(%s) = %v, want %v", tt.mode, tt.cmd.Name(), got, tt.expect)
			}
		})
	}
}

func TestFocusMode_IsTerminal(t *testing.T) {
	for _, m := range AllFocusModes() {
		want := m == ModeAllComplete
		if got := m.IsTerminal(); got != want {
			t.Errorf("%s.IsTerminal() = %v, want %v", m, got, want)
		}
	}
}

func TestFocusMode_Display(t *testing.T) {
	for _, m := range AllFocusModes() {
		if m.Display() == "" || m.Display() == string(m) {
			t.Errorf("%s has no display text", m)
		}
	}
	if got := FocusMode("other").Display(); got != "other" {
		t.Errorf("unknown mode Display() = %q", got)
	}
}
