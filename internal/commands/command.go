package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sandeepkv93/hearth/internal/calendar"
	"github.com/sandeepkv93/hearth/internal/scheduler"
)

type Type string

const (
	TypeAdd  Type = "add"
	TypeDone Type = "done"
	TypeRm   Type = "rm"
	TypeGoto Type = "goto"
	TypeItem Type = "item"
	TypeList Type = "list"
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

// WhenKind is the bucket an add command files its task under.
type WhenKind string

const (
	WhenUnset    WhenKind = ""
	WhenToday    WhenKind = "today"
	WhenTomorrow WhenKind = "tomorrow"
	WhenDate     WhenKind = "date"
	WhenWeek     WhenKind = "week"
	WhenMonth    WhenKind = "month"
	WhenLater    WhenKind = "later"
)

type When struct {
	Kind WhenKind
	Date calendar.Date
	// Time is an optional "HH:MM" due time for day tasks.
	Time string
}

type AddArgs struct {
	Text string
	When When
}

// IndexArgs points at a row of the current view, 1-based as displayed.
type IndexArgs struct {
	Index int
}

type GotoArgs struct {
	Today bool
	Date  calendar.Date
}

type NameArgs struct {
	Name string
}

type Command struct {
	Type Type
	Raw  string
	Add  *AddArgs
	Done *IndexArgs
	Rm   *IndexArgs
	Goto *GotoArgs
	Item *NameArgs
	List *NameArgs
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
	case TypeAdd:
		return parseAdd(input, args)
	case TypeDone, TypeRm:
		return parseIndex(input, Type(head), args)
	case TypeGoto:
		return parseGoto(input, args)
	case TypeItem, TypeList:
		return parseName(input, Type(head), args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

// parseAdd splits "@" tokens off the text: one bucket token (@today,
// @tomorrow, @YYYY-MM-DD, @week, @month, @later) and one @HH:MM due time.
func parseAdd(raw string, args []string) (Command, error) {
	var when When
	words := make([]string, 0, len(args))
	for _, arg := range args {
		if !strings.HasPrefix(arg, "@") || len(arg) == 1 {
			words = append(words, arg)
			continue
		}
		token := strings.ToLower(arg[1:])
		if _, _, _, ok := scheduler.ParseDueTime(token); ok {
			if when.Time != "" {
				return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add accepts one @time"}
			}
			when.Time = token
			continue
		}
		if when.Kind != WhenUnset {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("add accepts one @when, got %s", arg)}
		}
		switch WhenKind(token) {
		case WhenToday, WhenTomorrow, WhenWeek, WhenMonth, WhenLater:
			when.Kind = WhenKind(token)
		default:
			d, err := calendar.ParseDate(token)
			if err != nil {
				return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown @when: %s", arg)}
			}
			when.Kind = WhenDate
			when.Date = d
		}
	}

	text := strings.TrimSpace(strings.Join(words, " "))
	if text == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires text"}
	}
	if when.Time != "" {
		switch when.Kind {
		case WhenWeek, WhenMonth, WhenLater:
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "a due time needs a day"}
		}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{Text: text, When: when}}, nil
}

func parseIndex(raw string, typ Type, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s requires a row number", typ)}
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid row number: %s", args[0])}
	}
	cmd := Command{Type: typ, Raw: raw}
	if typ == TypeDone {
		cmd.Done = &IndexArgs{Index: n}
	} else {
		cmd.Rm = &IndexArgs{Index: n}
	}
	return cmd, nil
}

func parseGoto(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "goto requires a date or today"}
	}
	if strings.EqualFold(args[0], "today") {
		return Command{Type: TypeGoto, Raw: raw, Goto: &GotoArgs{Today: true}}, nil
	}
	d, err := calendar.ParseDate(args[0])
	if err != nil {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid date: %s", args[0])}
	}
	return Command{Type: TypeGoto, Raw: raw, Goto: &GotoArgs{Date: d}}, nil
}

func parseName(raw string, typ Type, args []string) (Command, error) {
	name := strings.TrimSpace(strings.Join(args, " "))
	if name == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s requires a name", typ)}
	}
	cmd := Command{Type: typ, Raw: raw}
	if typ == TypeItem {
		cmd.Item = &NameArgs{Name: name}
	} else {
		cmd.List = &NameArgs{Name: name}
	}
	return cmd, nil
}
