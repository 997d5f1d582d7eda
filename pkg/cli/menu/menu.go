// Package menu maps operator input to canned commands.
package menu

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/robotalks/cmdlink/pkg/l0/comm"
	"github.com/robotalks/cmdlink/pkg/l1"
)

// Item is a canned command.
type Item struct {
	Key     string
	Command comm.Command
}

// Items are the canned commands.
var Items = []Item{
	{"1", comm.Set{ID: 0x12, Message: comm.MsgB{Value: 12}, DeviceID: 0b001}},
	{"2", comm.Get{ID: 0x12, Parameter: 12, DeviceID: 0b001}},
	{"3", comm.Set{ID: 0x13, Message: comm.MsgC{Value: 3.14}, DeviceID: 0b001}},
	{"4", comm.Set{ID: 0x14, Message: comm.MsgA{}, DeviceID: 0b010}},
}

// Keys other than Items.
const (
	KeyHelp = "h"
	KeyQuit = "q"
)

// Action is what an input line asks for.
type Action int

// Actions.
const (
	ActionInvalid Action = iota
	ActionCommand
	ActionHelp
	ActionQuit
)

// Select maps an input line.
func Select(line string) (Action, *Item) {
	key := strings.TrimSpace(line)
	switch key {
	case KeyHelp:
		return ActionHelp, nil
	case KeyQuit:
		return ActionQuit, nil
	}
	for n := range Items {
		if Items[n].Key == key {
			return ActionCommand, &Items[n]
		}
	}
	return ActionInvalid, nil
}

// Text renders the menu.
func Text() string {
	var w bytes.Buffer
	for _, item := range Items {
		fmt.Fprintf(&w, "  %s: %v\n", item.Key, item.Command)
	}
	fmt.Fprintf(&w, "  %s: show this menu\n", KeyHelp)
	fmt.Fprintf(&w, "  %s: quit\n", KeyQuit)
	return w.String()
}

// Handle processes one input line and prints the outcome to out.
// It returns true when the operator asks to quit. A failed command
// is reported, never fatal.
func Handle(ctx context.Context, line string, requester l1.Requester, out io.Writer) bool {
	action, item := Select(line)
	switch action {
	case ActionQuit:
		return true
	case ActionHelp:
		io.WriteString(out, Text())
	case ActionCommand:
		rsp, err := requester.Request(ctx, item.Command)
		if err != nil {
			fmt.Fprintf(out, "%v failed: %v\n", item.Command, err)
		} else {
			fmt.Fprintf(out, "%v -> %v\n", item.Command, rsp)
		}
	default:
		io.WriteString(out, "invalid input\n")
	}
	return false
}
