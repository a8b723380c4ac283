package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lifesyncapp/lifesync/internal/model"
	"github.com/lifesyncapp/lifesync/internal/pomodoro"
)

type Type string

const (
	TypeTask   Type = "task"
	TypeWater  Type = "water"
	TypeMode   Type = "mode"
	TypeShow   Type = "show"
	TypeExport Type = "export"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// TaskArgs adds a task. A trailing !low / !medium / !high token sets the
// priority; otherwise it defaults to medium.
type TaskArgs struct {
	Text     string
	Priority model.Priority
}

// WaterArgs logs a water amount. "glass" parses to one standard glass.
type WaterArgs struct {
	AmountML int
}

type ModeArgs struct {
	Mode pomodoro.Mode
}

type ShowArgs struct {
	Subject string
}

type Command struct {
	Type  Type
	Raw   string
	Task  *TaskArgs
	Water *WaterArgs
	Mode  *ModeArgs
	Show  *ShowArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeTask:
		return parseTask(input, args)
	case TypeWater:
		return parseWater(input, args)
	case TypeMode:
		return parseMode(input, args)
	case TypeShow:
		return parseShow(input, args)
	case TypeExport:
		if len(args) != 0 {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "export takes no arguments"}
		}
		return Command{Type: TypeExport, Raw: input}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseTask(raw string, args []string) (Command, error) {
	priority := model.PriorityMedium
	if n := len(args); n > 0 && strings.HasPrefix(args[n-1], "!") {
		p := model.Priority(strings.ToLower(strings.TrimPrefix(args[n-1], "!")))
		if !p.IsValid() {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown priority: %s", args[n-1])}
		}
		priority = p
		args = args[:n-1]
	}
	text := strings.TrimSpace(strings.Join(args, " "))
	if text == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "task requires text"}
	}
	return Command{Type: TypeTask, Raw: raw, Task: &TaskArgs{Text: text, Priority: priority}}, nil
}

func parseWater(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "water requires an amount in ml, or \"glass\""}
	}
	arg := strings.ToLower(args[0])
	if arg == "glass" {
		return Command{Type: TypeWater, Raw: raw, Water: &WaterArgs{AmountML: 0}}, nil
	}
	amount, err := strconv.Atoi(strings.TrimSuffix(arg, "ml"))
	if err != nil || amount <= 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid water amount: %s", args[0])}
	}
	return Command{Type: TypeWater, Raw: raw, Water: &WaterArgs{AmountML: amount}}, nil
}

var modeAliases = map[string]pomodoro.Mode{
	"focus":      pomodoro.ModeFocus,
	"short":      pomodoro.ModeShortBreak,
	"shortbreak": pomodoro.ModeShortBreak,
	"long":       pomodoro.ModeLongBreak,
	"longbreak":  pomodoro.ModeLongBreak,
}

func parseMode(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "mode requires focus, short, or long"}
	}
	mode, ok := modeAliases[strings.ToLower(args[0])]
	if !ok {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown timer mode: %s", args[0])}
	}
	return Command{Type: TypeMode, Raw: raw, Mode: &ModeArgs{Mode: mode}}, nil
}

var showSubjects = map[string]bool{
	"tasks":      true,
	"water":      true,
	"pomodoro":   true,
	"journal":    true,
	"progress":   true,
	"meditation": true,
	"settings":   true,
}

func parseShow(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "show requires a subject"}
	}
	subject := strings.ToLower(args[0])
	if !showSubjects[subject] {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown subject: %s", subject)}
	}
	return Command{Type: TypeShow, Raw: raw, Show: &ShowArgs{Subject: subject}}, nil
}
