package commands

import (
	"errors"
	"testing"

	"github.com/lifesyncapp/lifesync/internal/model"
	"github.com/lifesyncapp/lifesync/internal/pomodoro"
)

func TestParseTask(t *testing.T) {
	cmd, err := Parse("/task Buy groceries !high")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cmd.Type != TypeTask {
		t.Fatalf("type = %s", cmd.Type)
	}
	if cmd.Task.Text != "Buy groceries" {
		t.Fatalf("text = %q", cmd.Task.Text)
	}
	if cmd.Task.Priority != model.PriorityHigh {
		t.Fatalf("priority = %s", cmd.Task.Priority)
	}
}

func TestParseTaskDefaultPriority(t *testing.T) {
	cmd, err := Parse("task Stretch for five minutes")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cmd.Task.Priority != model.PriorityMedium {
		t.Fatalf("priority = %s", cmd.Task.Priority)
	}
}

func TestParseWater(t *testing.T) {
	cases := []struct {
		input  string
		wantML int
	}{
		{"water 500", 500},
		{"water 250ml", 250},
		{"/water glass", 0},
	}
	for _, tc := range cases {
		cmd, err := Parse(tc.input)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tc.input, err)
		}
		if cmd.Water.AmountML != tc.wantML {
			t.Fatalf("Parse(%q) amount = %d, want %d", tc.input, cmd.Water.AmountML, tc.wantML)
		}
	}
}

func TestParseMode(t *testing.T) {
	cmd, err := Parse("mode long")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cmd.Mode.Mode != pomodoro.ModeLongBreak {
		t.Fatalf("mode = %s", cmd.Mode.Mode)
	}
}

func TestParseShowSubjects(t *testing.T) {
	for _, subject := range []string{"tasks", "water", "pomodoro", "journal", "progress", "meditation", "settings"} {
		cmd, err := Parse("show " + subject)
		if err != nil {
			t.Fatalf("Parse(show %s): %v", subject, err)
		}
		if cmd.Show.Subject != subject {
			t.Fatalf("subject = %q, want %q", cmd.Show.Subject, subject)
		}
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		input string
		code  ErrorCode
	}{
		{"", ErrCodeEmptyInput},
		{"/  ", ErrCodeEmptyInput},
		{"teleport home", ErrCodeUnknownCommand},
		{"task !urgent", ErrCodeInvalidArgument},
		{"water minus", ErrCodeInvalidArgument},
		{"water -100", ErrCodeInvalidArgument},
		{"mode nap", ErrCodeInvalidArgument},
		{"show weather", ErrCodeInvalidArgument},
		{"export now", ErrCodeInvalidArgument},
	}
	for _, tc := range cases {
		_, err := Parse(tc.input)
		var cmdErr *CommandError
		if !errors.As(err, &cmdErr) {
			t.Fatalf("Parse(%q) error = %v, want CommandError", tc.input, err)
		}
		if cmdErr.Code != tc.code {
			t.Fatalf("Parse(%q) code = %s, want %s", tc.input, cmdErr.Code, tc.code)
		}
	}
}

func TestExecuteRoutes(t *testing.T) {
	var gotWater int
	handlers := Handlers{
		Water: func(args WaterArgs) (Result, error) {
			gotWater = args.AmountML
			return Result{Message: "logged"}, nil
		},
	}

	cmd, err := Parse("water 300")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	res, err := Execute(cmd, handlers)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.Message != "logged" || gotWater != 300 {
		t.Fatalf("result = %+v, water = %d", res, gotWater)
	}
}

func TestExecuteMissingHandler(t *testing.T) {
	cmd, err := Parse("export")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	_, err = Execute(cmd, Handlers{})
	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) || cmdErr.Code != ErrCodeHandlerMissing {
		t.Fatalf("Execute error = %v, want handler_missing", err)
	}
}
