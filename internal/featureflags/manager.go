// Package featureflags gates in-progress features behind config, so a build
// can ship with e.g. the reworked profile page dark until it is turned on.
package featureflags

import (
	"hash/fnv"
	"strconv"
	"strings"
)

type mode int

const (
	modeOff mode = iota
	modeOn
	modeRollout
)

// rule is the parsed form of one flag value.
type rule struct {
	mode    mode
	percent int
}

// Manager evaluates flags from the FEATURE_FLAGS config string, a
// comma-separated list like "new_profile=on,canary_feed=25%,old_feed=off".
type Manager struct {
	rules map[string]rule
}

// NewManager parses the config string once. Malformed entries are dropped
// rather than failing startup; an unknown flag simply evaluates to off.
func NewManager(raw string) *Manager {
	rules := make(map[string]rule)
	for _, entry := range strings.Split(raw, ",") {
		name, value, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		name = normalize(name)
		if name == "" {
			continue
		}
		if r, ok := parseRule(normalize(value)); ok {
			rules[name] = r
		}
	}
	return &Manager{rules: rules}
}

func parseRule(value string) (rule, bool) {
	switch value {
	case "on", "true", "1":
		return rule{mode: modeOn}, true
	case "off", "false", "0":
		return rule{mode: modeOff}, true
	}
	pctRaw, ok := strings.CutSuffix(value, "%")
	if !ok {
		return rule{}, false
	}
	pct, err := strconv.Atoi(pctRaw)
	if err != nil || pct < 0 || pct > 100 {
		return rule{}, false
	}
	switch pct {
	case 0:
		return rule{mode: modeOff}, true
	case 100:
		return rule{mode: modeOn}, true
	}
	return rule{mode: modeRollout, percent: pct}, true
}

// Enabled reports whether the named flag is on for the given user. Percent
// rollouts bucket users deterministically, so one user keeps the same answer
// across requests; anonymous traffic (userID 0) never joins a rollout.
func (m *Manager) Enabled(name string, userID uint) bool {
	if m == nil {
		return false
	}
	r, ok := m.rules[normalize(name)]
	if !ok {
		return false
	}
	switch r.mode {
	case modeOn:
		return true
	case modeRollout:
		return userID != 0 && bucket(normalize(name), userID) < r.percent
	}
	return false
}

// Snapshot evaluates every configured flag for one user, for the
// client-facing features endpoint.
func (m *Manager) Snapshot(userID uint) map[string]bool {
	out := make(map[string]bool, len(m.rules))
	for name := range m.rules {
		out[name] = m.Enabled(name, userID)
	}
	return out
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// bucket maps a (flag, user) pair onto 0..99.
func bucket(name string, userID uint) int {
	h := fnv.New32a()
	h.Write([]byte(name))
	h.Write([]byte(":"))
	h.Write([]byte(strconv.FormatUint(uint64(userID), 10)))
	return int(h.Sum32() % 100)
}
