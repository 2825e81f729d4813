package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/creationhub/internal/access"
	"github.com/dmitrijs2005/creationhub/internal/common"
	"github.com/dmitrijs2005/creationhub/internal/identity"
	"github.com/dmitrijs2005/creationhub/internal/session"
)

type App struct {
	coord  *access.Coordinator
	sess   *session.Manager
	users  *identity.Store
	reader *bufio.Reader
	out    io.Writer
}

func NewApp(coord *access.Coordinator, sess *session.Manager, users *identity.Store, in io.Reader, out io.Writer) *App {
	return &App{coord: coord, sess: sess, users: users, reader: bufio.NewReader(in), out: out}
}

// Run blocks until the user exits, input ends or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to CreationHub (type 'help' for commands)")
	runREPL(ctx, a.reader, a.commands(), a.isLoggedIn, a.getStatus)
}

func (a *App) commands() []command {
	return []command{
		{name: "signup", run: a.signUp},
		{name: "trial", run: a.trial},
		{name: "login", run: a.login},
		{name: "recover", run: a.recoverPassword},

		{name: "logout", auth: true, run: a.logout},
		{name: "whoami", auth: true, run: a.profile},
		{name: "passwd", auth: true, run: a.changePassword},
		{name: "ban", usage: "<username> <days>", auth: true, run: a.ban},

		{name: "new", usage: "[name]", auth: true, run: a.newCreation},
		{name: "addevent", usage: "<creation>", auth: true, run: a.addEvent},
		{name: "rmevent", usage: "<creation> <event>", auth: true, run: a.removeEvent},
		{name: "editevent", usage: "<creation> <event>", auth: true, run: a.editEvent},
		{name: "rename", usage: "<creation> [name]", auth: true, run: a.rename},
		{name: "privacy", usage: "<creation> [event] <true|false>", auth: true, run: a.privacy},
		{name: "delete", usage: "<creation>", auth: true, run: a.deleteCreation},
		{name: "mine", auth: true, run: a.mine},
		{name: "browse", auth: true, run: a.browse},
		{name: "view", usage: "<creation>", auth: true, run: a.view},

		{name: "send", auth: true, run: a.send},
		{name: "reply", usage: "<message>", auth: true, run: a.reply},
		{name: "inbox", auth: true, run: a.inbox},
		{name: "read", usage: "<message>", auth: true, run: a.read},
		{name: "thread", usage: "<message>", auth: true, run: a.thread},
		{name: "rmmsg", usage: "<message>", auth: true, run: a.removeMessage},
		{name: "attach", usage: "<message> <creation>", auth: true, run: a.attach},
	}
}

func (a *App) isLoggedIn() bool {
	_, ok := a.sess.Current()
	return ok
}

func (a *App) getStatus() string {
	id, ok := a.sess.Current()
	if !ok {
		return ""
	}
	u, err := a.users.Get(id)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("(%s %s)", u.Username, u.Role)
}

// currentUser returns the logged-in user id.
func (a *App) currentUser() (string, error) {
	id, ok := a.sess.Current()
	if !ok {
		return "", common.ErrNotLoggedIn
	}
	return id, nil
}

// arg returns args[i], prompting for it when missing.
func (a *App) arg(args []string, i int, prompt string) (string, error) {
	if i < len(args) {
		return args[i], nil
	}
	return GetSimpleText(a.reader, prompt, a.out)
}

func (a *App) say(format string, args ...any) {
	fmt.Fprintf(a.out, format+"\n", args...)
}

// describe renders an error for the user.
func describe(err error) string {
	switch {
	case errors.Is(err, common.ErrorUnauthorized):
		return "you are not allowed to do that"
	case errors.Is(err, common.ErrNoCredentials):
		return "trial accounts cannot log in again"
	case errors.Is(err, common.ErrorNotFound):
		return "no such item: " + err.Error()
	}
	return err.Error()
}
