package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/devconnector/internal/client/models"
	"github.com/dmitrijs2005/devconnector/internal/common"
)

// getSimpleText, getPassword and getMultiline are swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getMultiline  = GetMultiline
)

const dateLayout = "2006-01-02 15:04"

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
	defer common.WipeByteArray(password)

	if err := a.authService.Register(ctx, name, email, password); err != nil {
		return err
	}
	a.userName = common.NormalizeEmail(email)
	fmt.Fprintln(a.out, "Registered and logged in")
	return nil
}

func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.authService.Login(ctx, email, password); err != nil {
		return err
	}
	a.userName = common.NormalizeEmail(email)
	fmt.Fprintln(a.out, "Login successful")
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	a.userName = ""
	return nil
}

func (a *App) Me(ctx context.Context) error {
	u, err := a.authService.Me(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s <%s>\nid: %s\nmember since: %s\n", u.Name, u.Email, u.ID, u.CreatedAt.Format(dateLayout))
	return nil
}

func (a *App) Profile(ctx context.Context) error {
	p, err := a.postService.MyProfile(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s | %s\n", p.User.Name, p.Status)
	if p.Company != "" {
		fmt.Fprintf(a.out, "company: %s\n", p.Company)
	}
	fmt.Fprintf(a.out, "skills: %s\n", strings.Join(p.Skills, ", "))
	for _, e := range p.Experience {
		fmt.Fprintf(a.out, "  exp: %s at %s (%s)\n", e.Title, e.Company, e.From.Format("2006-01"))
	}
	for _, e := range p.Education {
		fmt.Fprintf(a.out, "  edu: %s, %s (%s)\n", e.Degree, e.School, e.From.Format("2006-01"))
	}
	return nil
}

func (a *App) EditProfile(ctx context.Context) error {
	status, err := getSimpleText(a.reader, "Status (e.g. Developer)", a.out)
	if err != nil {
		return err
	}
	skills, err := getSimpleText(a.reader, "Skills, comma separated", a.out)
	if err != nil {
		return err
	}
	company, err := getSimpleText(a.reader, "Company (optional)", a.out)
	if err != nil {
		return err
	}

	p, err := a.postService.SaveProfile(ctx, &models.ProfileInput{Status: status, Skills: skills, Company: company})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Profile saved (%d skills)\n", len(p.Skills))
	return nil
}

func (a *App) Posts(ctx context.Context) error {
	posts, err := a.postService.List(ctx)
	if err != nil {
		return err
	}
	if len(posts) == 0 {
		fmt.Fprintln(a.out, "No posts yet")
		return nil
	}
	for _, p := range posts {
		fmt.Fprintf(a.out, "%s  %s  %s: %s  [%d likes, %d comments]\n",
			p.ID, p.CreatedAt.Format(dateLayout), p.Name, firstLine(p.Text), len(p.Likes), len(p.Comments))
	}
	return nil
}

func (a *App) Show(ctx context.Context, id string) error {
	p, err := a.postService.Get(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s wrote on %s:\n%s\n%d likes\n", p.Name, p.CreatedAt.Format(dateLayout), p.Text, len(p.Likes))
	for _, c := range p.Comments {
		fmt.Fprintf(a.out, "  %s (%s): %s\n", c.Name, c.ID, c.Text)
	}
	return nil
}

func (a *App) CreatePost(ctx context.Context) error {
	text, err := getMultiline(a.reader, "Post text", a.out)
	if err != nil {
		return err
	}
	p, err := a.postService.Create(ctx, text)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Created post", p.ID)
	return nil
}

func (a *App) Delete(ctx context.Context, id string) error {
	if err := a.postService.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Post removed")
	return nil
}

func (a *App) Like(ctx context.Context, id string) error {
	n, err := a.postService.Like(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Liked (%d likes)\n", n)
	return nil
}

func (a *App) Unlike(ctx context.Context, id string) error {
	n, err := a.postService.Unlike(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Unliked (%d likes)\n", n)
	return nil
}

func (a *App) Comment(ctx context.Context, id string) error {
	text, err := getMultiline(a.reader, "Comment text", a.out)
	if err != nil {
		return err
	}
	n, err := a.postService.Comment(ctx, id, text)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Commented (%d comments)\n", n)
	return nil
}

func (a *App) Avatar(ctx context.Context, path string) error {
	url, err := a.avatars.Upload(ctx, path)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Avatar updated:", url)
	return nil
}

func firstLine(s string) string {
	line, _, cut := strings.Cut(s, "\n")
	if cut {
		return line + " ..."
	}
	return line
}
