package artifacts

import (
	"strings"
	"time"
)

// SecurityExpiry is how long a generated security.txt stays valid.
const SecurityExpiry = 180 * 24 * time.Hour

// Team describes who is credited in humans.txt and contacted from
// security.txt.
type Team struct {
	Name          string
	ContactEmail  string
	SecurityEmail string
	Twitter       string
	Tools         string
}

func HumansTxt(team Team, origin string, now time.Time) string {
	lines := []string{
		"/* TEAM */",
		"Team: " + team.Name,
		"Site: " + origin,
		"Contact: " + team.ContactEmail,
	}
	if team.Twitter != "" {
		lines = append(lines, "Twitter: "+team.Twitter)
	}
	lines = append(lines,
		"",
		"/* TECHNOLOGY */",
		"Tools: "+team.Tools,
		"Last-Updated: "+now.UTC().Format(lastModLayout),
		"",
		"/* THANKS */",
		"Thanks: Our clients, collaborators, and the open-source community.",
		"",
	)
	return strings.Join(lines, "\n")
}

// SecurityTxt renders an RFC 9116 security.txt that expires SecurityExpiry
// after now.
func SecurityTxt(team Team, origin string, now time.Time) string {
	expires := now.UTC().Add(SecurityExpiry).Format("2006-01-02")
	return strings.Join([]string{
		"Contact: mailto:" + team.SecurityEmail,
		"Preferred-Languages: en",
		"Canonical: " + origin + "/.well-known/security.txt",
		"Expires: " + expires,
		"",
	}, "\n")
}
