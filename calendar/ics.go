package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/pulizieapp/cleaning-planner/models"
)

const icsStampLayout = "20060102T150405"

// escapeText escapes an ICS TEXT value per RFC 5545: backslash, semicolon,
// comma and embedded newlines.
func escapeText(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, ";", `\;`)
	s = strings.ReplaceAll(s, ",", `\,`)
	s = strings.ReplaceAll(s, "\r\n", `\n`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	return s
}

// icsDateTime renders a stored date+time pair ("2025-03-10", "07:00") as a
// floating local timestamp (20250310T070000), no UTC designator.
func icsDateTime(date, start string) string {
	return strings.ReplaceAll(date, "-", "") + "T" + strings.ReplaceAll(start, ":", "") + "00"
}

// description concatenates notes, assigned client names and price, each
// section separated by a blank line and omitted entirely when absent.
func description(o models.Order) string {
	var sections []string
	if o.Notes != nil && *o.Notes != "" {
		sections = append(sections, *o.Notes)
	}
	if len(o.Employees) > 0 {
		names := make([]string, 0, len(o.Employees))
		for _, e := range o.Employees {
			names = append(names, e.FullName())
		}
		sections = append(sections, strings.Join(names, ", "))
	}
	if o.Price != nil {
		sections = append(sections, fmt.Sprintf("%.2f EUR", *o.Price))
	}
	return strings.Join(sections, "\n\n")
}

// RenderICS serializes one order as an iCalendar document with a single
// VEVENT and two display reminders (30 minutes before start, and at start).
//
// The caller guarantees o.StartTime is set; the enclosing screen blocks
// export and asks for a time when it is missing. The UID is a best-effort
// unique value built from the order id and the wall-clock millisecond.
func RenderICS(o models.Order, domain string, now time.Time) string {
	start := ""
	if o.StartTime != nil {
		start = *o.StartTime
	}

	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//Cleaning Planner//Cleaning Planner//IT",
		"CALSCALE:GREGORIAN",
		"METHOD:PUBLISH",
		"BEGIN:VEVENT",
		fmt.Sprintf("UID:order-%d-%d@%s", o.ID, now.UnixMilli(), domain),
		"DTSTAMP:" + now.Format(icsStampLayout),
		"DTSTART:" + icsDateTime(o.CleaningDate, start),
		"SUMMARY:" + escapeText(o.Name),
	}
	if desc := description(o); desc != "" {
		lines = append(lines, "DESCRIPTION:"+escapeText(desc))
	}
	lines = append(lines,
		"BEGIN:VALARM",
		"ACTION:DISPLAY",
		"DESCRIPTION:"+escapeText(o.Name)+" in 30 minutes",
		"TRIGGER:-PT30M",
		"END:VALARM",
		"BEGIN:VALARM",
		"ACTION:DISPLAY",
		"DESCRIPTION:"+escapeText(o.Name)+" now",
		"TRIGGER:PT0M",
		"END:VALARM",
		"END:VEVENT",
		"END:VCALENDAR",
	)
	return strings.Join(lines, "\r\n") + "\r\n"
}
