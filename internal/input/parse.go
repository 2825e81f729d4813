package input

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/creationhub/internal/common"
	"github.com/dmitrijs2005/creationhub/internal/models"
)

// DateLayout is the layout of Schedule event dates, e.g. 26-03-14.
const DateLayout = "06-01-02"

// ParseEvent reads "name,note,privacy,payload" for a creation of the given
// kind. Privacy is true or false; the payload is an urgency from 1 to 10
// (Todo), a DateLayout date (Schedule) or ';'-separated tags (Tagged).
func ParseEvent(raw string, kind models.CreationType) (models.Event, error) {
	fields := strings.Split(raw, ",")
	if len(fields) < 4 {
		return models.Event{}, fmt.Errorf("%w: want name,note,privacy,%s; got %d fields",
			common.ErrMalformedEventPayload, payloadHint(kind), len(fields))
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	private, err := ParsePrivacy(fields[2])
	if err != nil {
		return models.Event{}, err
	}

	e := models.Event{Name: fields[0], Note: fields[1], Private: private}
	raw = fields[3]

	switch kind {
	case models.CreationTodo:
		u, err := strconv.Atoi(raw)
		if err != nil || u < 1 || u > 10 || strconv.Itoa(u) != raw {
			return models.Event{}, fmt.Errorf("%w: invalid urgency %q", common.ErrMalformedEventPayload, raw)
		}
		e.Payload = models.TodoPayload{Urgency: u}
	case models.CreationSchedule:
		d, err := time.Parse(DateLayout, raw)
		if err != nil {
			return models.Event{}, fmt.Errorf("%w: invalid date %q", common.ErrMalformedEventPayload, raw)
		}
		e.Payload = models.SchedulePayload{Date: d}
	case models.CreationTagged:
		var tags []string
		for _, t := range strings.Split(raw, ";") {
			if t = strings.TrimSpace(t); t != "" {
				tags = append(tags, t)
			}
		}
		e.Payload = models.TaggedPayload{Tags: tags}
	default:
		return models.Event{}, fmt.Errorf("%w: %q", common.ErrUnknownCreationType, kind)
	}
	return e, nil
}

func payloadHint(kind models.CreationType) string {
	switch kind {
	case models.CreationTodo:
		return "urgency"
	case models.CreationSchedule:
		return "date"
	case models.CreationTagged:
		return "tags"
	}
	return "payload"
}

// ParsePrivacy accepts exactly "true" or "false".
func ParsePrivacy(s string) (bool, error) {
	switch s {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, fmt.Errorf("%w: invalid privacy %q", common.ErrMalformedEventPayload, s)
}

func ParseKind(s string) (models.CreationType, error) {
	k, err := models.ParseCreationType(s)
	if err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrUnknownCreationType, err)
	}
	return k, nil
}

// ParseReceivers splits a comma-separated list of usernames.
func ParseReceivers(s string) []string {
	var res []string
	for _, name := range strings.Split(s, ",") {
		if name = strings.TrimSpace(name); name != "" {
			res = append(res, name)
		}
	}
	return res
}

// ParseDays reads a ban duration. Negative values are accepted.
func ParseDays(s string) (int, error) {
	d, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid number of days %q: %w", s, err)
	}
	return d, nil
}
