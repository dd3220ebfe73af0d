// Package cli implements the interactive terminal client for the AuthGate
// HTTP API: register, login, and whoami against a running server.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// App drives the interactive session. The token from the last successful
// register/login is kept for authenticated commands.
type App struct {
	client *Client
	reader *bufio.Reader
	out    io.Writer
	token  string
}

func NewApp(serverURL string) *App {
	return &App{
		client: NewClient(serverURL),
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}
}

// Register prompts for a name, email, and password and creates an account.
// On success the issued token is stored for subsequent commands.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}

	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	token, err := a.client.Register(ctx, name, email, password)
	if err != nil {
		return err
	}

	a.token = token
	fmt.Fprintln(a.out, "Success!")
	return nil
}

// Login prompts for credentials and authenticates. On success the issued
// token is stored for subsequent commands.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	token, err := a.client.Login(ctx, email, password)
	if err != nil {
		return err
	}

	a.token = token
	fmt.Fprintln(a.out, "Success!")
	return nil
}

// Whoami prints the profile behind the stored token.
func (a *App) Whoami(ctx context.Context) error {
	if a.token == "" {
		return errors.New("not logged in")
	}

	info, err := a.client.Whoami(ctx, a.token)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "id: %s\nname: %s\nemail: %s\navatar: %s\n",
		info.ID, info.Name, info.Email, info.Avatar)
	return nil
}

// Run reads commands until "exit" or EOF.
func (a *App) Run(ctx context.Context) {
	for {
		cmd, err := getSimpleText(a.reader, "Command (register/login/whoami/exit)", a.out)
		if err != nil {
			return
		}

		switch cmd {
		case "register":
			err = a.Register(ctx)
		case "login":
			err = a.Login(ctx)
		case "whoami":
			err = a.Whoami(ctx)
		case "exit":
			return
		default:
			fmt.Fprintln(a.out, "Unknown command")
			continue
		}

		if err != nil {
			fmt.Fprintln(a.out, err.Error())
		}
	}
}
