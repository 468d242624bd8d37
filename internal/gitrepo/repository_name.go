package gitrepo

import "strings"

// DeriveRepositoryName extracts the repository name from a remote URL or local path.
//
// The final path segment is taken after trimming trailing separators and any
// .git suffix, so https://host/team/widgets.git, git@host:team/widgets.git,
// and /srv/mirrors/widgets.git/ all yield widgets.
func DeriveRepositoryName(source string) (string, error) {
	trimmedSource := strings.TrimSpace(source)
	trimmedSource = strings.TrimRight(trimmedSource, pathSeparatorConstant)
	if len(trimmedSource) == 0 {
		return "", RemoteURLParseError{Input: source, Message: requiredValueMessageConstant}
	}

	candidate := trimmedSource
	if separatorIndex := strings.LastIndex(candidate, pathSeparatorConstant); separatorIndex >= 0 {
		candidate = candidate[separatorIndex+1:]
	}
	if delimiterIndex := strings.LastIndex(candidate, sshPathDelimiterConstant); delimiterIndex >= 0 {
		candidate = candidate[delimiterIndex+1:]
	}
	candidate = strings.TrimSuffix(candidate, gitSuffixConstant)
	if len(candidate) == 0 {
		return "", RemoteURLParseError{Input: source, Message: invalidRemoteURLMessageConstant}
	}

	return candidate, nil
}
