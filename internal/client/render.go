package client

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/go-user-directory/models"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

const timeLayout = "2006-01-02 15:04"

// renderUsers writes one page of users as a table followed by a paging line.
func renderUsers(w io.Writer, page models.UsersPageResponse) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "USERNAME", "ROLE", "ACTIVE", "LAST LOGIN").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	for _, u := range page.Users {
		t.Row(u.ID, u.Username, u.Role, strconv.FormatBool(u.IsActive), formatTime(u.LastLoginAt))
	}

	fmt.Fprintln(w, t.Render())
	fmt.Fprintln(w, helpStyle.Render(fmt.Sprintf("page %d of %d, %d users in total",
		page.CurrentPage+1, max(page.TotalPages, 1), page.TotalItems)))
}

func renderUser(w io.Writer, u models.User) {
	renderPairs(w, "User", [][2]string{
		{"id", u.ID},
		{"username", u.Username},
		{"role", u.Role},
		{"active", strconv.FormatBool(u.IsActive)},
		{"last login", formatTime(u.LastLoginAt)},
		{"updated", formatTime(u.UpdatedAt)},
	})
}

func renderProfile(w io.Writer, p models.ProfileResponse) {
	renderPairs(w, "Profile", [][2]string{
		{"username", p.Username},
		{"role", p.Role},
	})
}

func renderStats(w io.Writer, s models.UserStats) {
	renderPairs(w, "Statistics", [][2]string{
		{"total", strconv.FormatInt(s.TotalUsers, 10)},
		{"active", strconv.FormatInt(s.ActiveUsers, 10)},
		{"inactive", strconv.FormatInt(s.InactiveUsers, 10)},
		{"admins", strconv.FormatInt(s.AdminUsers, 10)},
		{"regular", strconv.FormatInt(s.RegularUsers, 10)},
		{"logins today", strconv.FormatInt(s.TodayLogins, 10)},
	})
}

func renderPairs(w io.Writer, title string, pairs [][2]string) {
	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	for _, p := range pairs {
		b.WriteString(labelStyle.Render(p[0]))
		b.WriteString(p[1])
		b.WriteString("\n")
	}
	fmt.Fprint(w, b.String())
}

func formatTime(t *time.Time) string {
	if t == nil {
		return "never"
	}
	return t.Local().Format(timeLayout)
}
