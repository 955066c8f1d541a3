package service

import (
	"fmt"
	"strings"

	"github.com/msomdec/newsdesk/internal/domain"
)

// ArticleDocument lays out an article for rendering. Missing authors
// render as "Unknown author".
func ArticleDocument(a *domain.Article) domain.Document {
	author := "Unknown author"
	if a.Author != nil {
		author = a.Author.FullName()
	}

	var meta []string
	if a.Status != nil {
		meta = append(meta, "Status: "+a.Status.Name)
	}
	if len(a.Tags) > 0 {
		names := make([]string, len(a.Tags))
		for i, t := range a.Tags {
			names[i] = t.Name
		}
		meta = append(meta, "Tags: "+strings.Join(names, ", "))
	}
	meta = append(meta, "Published: "+a.CreatedAt.Format("2006-01-02"))

	return domain.Document{
		Title:  a.Title,
		Author: author,
		Body:   strings.Join(meta, "\n") + "\n\n" + a.Body,
	}
}

// ProfileDocument lays out a user's profile for rendering.
func ProfileDocument(u *domain.User) domain.Document {
	lines := []string{
		"Login: " + u.Login,
		"Email: " + u.Email,
		"Birth date: " + u.BirthDate.Format("2006-01-02"),
		fmt.Sprintf("Member since: %s", u.CreatedAt.Format("2006-01-02")),
	}
	return domain.Document{
		Title:  "User profile",
		Author: u.FullName(),
		Body:   strings.Join(lines, "\n"),
	}
}
