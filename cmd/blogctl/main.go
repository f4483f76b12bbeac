// Command blogctl drives the blog admin API from a terminal. It shares the
// session file with the console, so a login here is a login there.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/SergeyParamoshkin/blogconsole/client"
	"github.com/SergeyParamoshkin/blogconsole/internal/config"
	"github.com/SergeyParamoshkin/blogconsole/internal/model"
	"github.com/SergeyParamoshkin/blogconsole/internal/session"
)

const usage = `usage: blogctl [flags] <command> [args]

commands:
  login <secret>                  verify the admin secret key and store the session
  logout                          forget the stored session
  status                          show whether the stored session is usable
  dashboard                       show the admin counters
  articles list [-page -size -status -keyword]
  articles get <id>
  articles create <file.json|->   create from an article JSON document
  articles delete <id>
  categories [list|stats]
  tags [list|stats]
  comments list [-page -size -status]
  comments submit -article <id> -nickname <name> [-email] <content>
  comments approve|reject|delete <id>
  upload <image>
`

var errUsage = errors.New("invalid usage")

type cli struct {
	blog  *client.Blog
	store session.Store
	out   io.Writer
	now   func() time.Time
}

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("blogctl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { fmt.Fprint(stderr, usage) }

	var (
		cfgPath = fs.String("config", config.GetEnv("BLOGCONSOLE_CONFIG", ""), "YAML config file")
		server  = fs.String("server", "", "backend origin (overrides backend.origin)")
		sess    = fs.String("session", "", "session file (overrides session.path)")
	)
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if fs.NArg() == 0 {
		fs.Usage()

		return errUsage
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return err
	}
	if *server != "" {
		cfg.Backend.Origin = *server
	}
	if *sess != "" {
		cfg.Session.Path = *sess
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Session.Path), 0o700); err != nil {
		return fmt.Errorf("session dir: %w", err)
	}

	store := session.NewFileStore(cfg.Session.Path)
	c := &cli{
		store: store,
		out:   stdout,
		now:   time.Now,
		blog: client.NewBlog(cfg.Backend.Origin, store,
			client.WithTimeout(cfg.Backend.Timeout),
			client.WithNotifier(client.WriterNotifier{W: stderr}),
			client.WithRedirect(func(string) {
				fmt.Fprintln(stderr, "run `blogctl login <secret>` to start a new session")
			}),
		),
	}

	return c.dispatch(ctx, fs.Args())
}

func (c *cli) dispatch(ctx context.Context, args []string) error {
	cmd, rest := args[0], args[1:]

	switch cmd {
	case "login":
		return c.login(ctx, rest)
	case "logout":
		return c.blog.Logout()
	case "status":
		return c.status()
	case "dashboard":
		d, err := c.blog.Dashboard(ctx)
		if err != nil {
			return err
		}

		return c.print(d)
	case "articles":
		return c.articles(ctx, rest)
	case "categories":
		return c.stats(rest, func() (interface{}, error) { return c.blog.ListCategories(ctx) },
			func() (interface{}, error) { return c.blog.CategoryStats(ctx) })
	case "tags":
		return c.stats(rest, func() (interface{}, error) { return c.blog.ListTags(ctx) },
			func() (interface{}, error) { return c.blog.TagStats(ctx) })
	case "comments":
		return c.comments(ctx, rest)
	case "upload":
		return c.upload(ctx, rest)
	}

	return fmt.Errorf("unknown command %q", cmd)
}

func (c *cli) login(ctx context.Context, args []string) error {
	secret := config.GetEnv("BLOGCONSOLE_SECRET", "")
	if len(args) > 0 {
		secret = args[0]
	}
	if secret == "" {
		return errors.New("login: secret key required")
	}

	tok, err := c.blog.Login(ctx, secret)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "logged in, session expires %s\n", time.Unix(tok.ExpiresAt, 0).Format(time.RFC3339))

	return nil
}

func (c *cli) status() error {
	state, s, err := session.Evaluate(c.store, c.now())
	if err != nil {
		return err
	}
	if state != session.Authorized {
		fmt.Fprintln(c.out, state)

		return nil
	}

	expires := "never"
	if n, err := strconv.ParseInt(s.ExpiresAt, 10, 64); err == nil {
		expires = time.Unix(n, 0).Format(time.RFC3339)
	}
	fmt.Fprintf(c.out, "%s (expires %s)\n", state, expires)

	return nil
}

func (c *cli) articles(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("articles: subcommand required")
	}

	switch args[0] {
	case "list":
		fs := flag.NewFlagSet("articles list", flag.ContinueOnError)
		page := fs.Int("page", 1, "page number")
		size := fs.Int("size", 10, "page size")
		status := fs.Int("status", -1, "0 draft, 1 published, -1 any")
		keyword := fs.String("keyword", "", "search keyword")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}

		q := model.ArticleQuery{Page: *page, PageSize: *size, Keyword: *keyword}
		if *status >= 0 {
			s := int8(*status)
			q.Status = &s
		}
		p, err := c.blog.ListArticles(ctx, q)
		if err != nil {
			return err
		}

		return c.print(p)
	case "get":
		id, err := argID(args[1:])
		if err != nil {
			return err
		}
		a, err := c.blog.GetArticle(ctx, id)
		if err != nil {
			return err
		}

		return c.print(a)
	case "create":
		if len(args) < 2 {
			return errors.New("articles create: input file required")
		}
		var in model.ArticleInput
		if err := readJSON(args[1], &in); err != nil {
			return err
		}
		a, err := c.blog.CreateArticle(ctx, in)
		if err != nil {
			return err
		}

		return c.print(a)
	case "delete":
		id, err := argID(args[1:])
		if err != nil {
			return err
		}

		return c.blog.DeleteArticle(ctx, id)
	}

	return fmt.Errorf("articles: unknown subcommand %q", args[0])
}

func (c *cli) stats(args []string, list, stats func() (interface{}, error)) error {
	fetch := list
	if len(args) > 0 && args[0] == "stats" {
		fetch = stats
	}
	v, err := fetch()
	if err != nil {
		return err
	}

	return c.print(v)
}

func (c *cli) comments(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("comments: subcommand required")
	}

	var action func(context.Context, uint) error
	switch args[0] {
	case "list":
		fs := flag.NewFlagSet("comments list", flag.ContinueOnError)
		page := fs.Int("page", 1, "page number")
		size := fs.Int("size", 20, "page size")
		status := fs.Int("status", -1, "0 pending, 1 approved, 2 rejected, -1 any")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}

		q := model.CommentQuery{Page: *page, PageSize: *size}
		if *status >= 0 {
			s := int8(*status)
			q.Status = &s
		}
		p, err := c.blog.ListAdminComments(ctx, q)
		if err != nil {
			return err
		}

		return c.print(p)
	case "submit":
		return c.submitComment(ctx, args[1:])
	case "approve":
		action = c.blog.ApproveComment
	case "reject":
		action = c.blog.RejectComment
	case "delete":
		action = c.blog.DeleteComment
	default:
		return fmt.Errorf("comments: unknown subcommand %q", args[0])
	}

	id, err := argID(args[1:])
	if err != nil {
		return err
	}

	return action(ctx, id)
}

// submitComment posts a reader comment; it needs no admin session.
func (c *cli) submitComment(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("comments submit", flag.ContinueOnError)
	article := fs.Uint("article", 0, "article id")
	nickname := fs.String("nickname", "", "display name")
	email := fs.String("email", "", "contact email")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *article == 0 || fs.NArg() == 0 {
		return errors.New("comments submit: -article and content required")
	}

	cm, err := c.blog.SubmitComment(ctx, model.CommentInput{
		ArticleID: *article,
		Nickname:  *nickname,
		Email:     *email,
		Content:   strings.Join(fs.Args(), " "),
	})
	if err != nil {
		return err
	}

	return c.print(cm)
}

func (c *cli) upload(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("upload: image path required")
	}

	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	up, err := c.blog.UploadImage(ctx, filepath.Base(args[0]), f)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.out, up.URL)

	return nil
}

func (c *cli) print(v interface{}) error {
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}

func argID(args []string) (uint, error) {
	if len(args) == 0 {
		return 0, errors.New("id required")
	}
	id, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil {
		return 0, fmt.Errorf("bad id %q: %w", args[0], err)
	}

	return uint(id), nil
}

// readJSON decodes the file at path, or stdin when path is "-".
func readJSON(path string, v interface{}) error {
	r := io.Reader(os.Stdin)
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}

	if err := json.NewDecoder(r).Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	return nil
}
