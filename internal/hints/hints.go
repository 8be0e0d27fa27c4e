// Package hints turns common export failures into one actionable line.
// Every hint renders as "\n  hint: <text>" so it can be appended to an
// error message; an empty string means there is nothing to suggest.
package hints

import "strings"

// ciVars are set by the CI systems whose runners need ROD_NO_SANDBOX.
var ciVars = []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}

// ForBrowserConnect suggests the rod environment variables that fix most
// launch failures. getenv is the lookup the export used; inContainer
// comes from the caller's container detection.
func ForBrowserConnect(getenv func(string) string, inContainer bool) string {
	var parts []string

	if (inContainer || inCI(getenv)) && getenv("ROD_NO_SANDBOX") != "1" {
		parts = append(parts, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if getenv("ROD_BROWSER_BIN") == "" {
		parts = append(parts, "set ROD_BROWSER_BIN to use an installed Chrome")
	}

	return format(strings.Join(parts, "; "))
}

func inCI(getenv func(string) string) bool {
	for _, v := range ciVars {
		if getenv(v) != "" {
			return true
		}
	}
	return false
}

// ForTimeout covers slow font hosts and cold browser starts.
func ForTimeout() string {
	return format("slow font hosts or cold browser starts need a larger --timeout")
}

// ForConfigNotFound points at --config, or at the first user config
// location among candidates.
func ForConfigNotFound(candidates []string) string {
	hint := "use --config /path/to/file.yaml"
	for _, p := range candidates {
		if strings.Contains(p, "go-quotecard") {
			hint += " or create " + p
			break
		}
	}
	return format(hint)
}

// ForOutputDirectory covers artifact delivery failures.
func ForOutputDirectory() string {
	return format("check --output points at a writable directory")
}

// ForUnknownTheme lists the theme identifiers the caller may use instead.
func ForUnknownTheme(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForFontFetch covers bundle font retrieval. files are the names the
// font source must serve.
func ForFontFetch(fromURL bool, files []string) string {
	if fromURL {
		return format("check --fonts-url is reachable or point --fonts-dir at local copies")
	}
	if len(files) == 0 {
		return format("set --fonts-dir or --fonts-url")
	}
	return format("--fonts-dir must contain " + strings.Join(files, ", "))
}

func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}
