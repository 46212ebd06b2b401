package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Me(ctx context.Context) error
	Profile(ctx context.Context) error
	EditProfile(ctx context.Context) error
	Posts(ctx context.Context) error
	Show(ctx context.Context, id string) error
	CreatePost(ctx context.Context) error
	Delete(ctx context.Context, id string) error
	Like(ctx context.Context, id string) error
	Unlike(ctx context.Context, id string) error
	Comment(ctx context.Context, id string) error
	Avatar(ctx context.Context, path string) error
}

// commands that take a post id as their only argument.
var idCommands = map[string]func(execIface, context.Context, string) error{
	"show":    execIface.Show,
	"delete":  execIface.Delete,
	"like":    execIface.Like,
	"unlike":  execIface.Unlike,
	"comment": execIface.Comment,
}

// runREPL reads commands from scanner and dispatches them to a until EOF
// or "exit"/"quit". Handler errors are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("dc (%s)> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var err error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: me, profile, editprofile, posts, show <id>, post, delete <id>, like <id>, unlike <id>, comment <id>, avatar <file>, logout, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			err = a.Register(ctx)
		case "login":
			err = a.Login(ctx)
		case "logout":
			err = a.Logout(ctx)
		case "me":
			err = a.Me(ctx)
		case "profile":
			err = a.Profile(ctx)
		case "editprofile":
			err = a.EditProfile(ctx)
		case "posts", "l":
			err = a.Posts(ctx)
		case "post":
			err = a.CreatePost(ctx)

		case "show", "delete", "like", "unlike", "comment":
			if len(args) != 1 {
				printlnFn(fmt.Sprintf("Usage: %s <post id>", cmd))
				continue
			}
			err = idCommands[cmd](a, ctx, args[0])

		case "avatar":
			if len(args) != 1 {
				printlnFn("Usage: avatar <image file>")
				continue
			}
			err = a.Avatar(ctx, args[0])

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", err)
		}
	}
}
