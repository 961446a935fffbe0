package scoring

import "strings"

// VerbTier orders leading action verbs from strategic (1) to weak (4).
// Tier 0 means the leading word was not recognized as a verb.
type VerbTier int

// Verb tiers, strongest first.
const (
	TierUnknown   VerbTier = 0
	TierStrategic VerbTier = 1
	TierStrong    VerbTier = 2
	TierModerate  VerbTier = 3
	TierWeak      VerbTier = 4
)

// verbTiers classifies common resume bullet leading verbs. Lowercase,
// past-tense forms as typically written.
var verbTiers = map[string]VerbTier{
	// Strategic / leadership
	"led": TierStrategic, "spearheaded": TierStrategic, "architected": TierStrategic,
	"directed": TierStrategic, "orchestrated": TierStrategic, "championed": TierStrategic,
	"transformed": TierStrategic, "pioneered": TierStrategic, "drove": TierStrategic,
	"founded": TierStrategic, "established": TierStrategic, "scaled": TierStrategic,
	"mentored": TierStrategic, "owned": TierStrategic, "defined": TierStrategic,

	// Strong action
	"built": TierStrong, "developed": TierStrong, "implemented": TierStrong,
	"designed": TierStrong, "launched": TierStrong, "delivered": TierStrong,
	"engineered": TierStrong, "optimized": TierStrong, "improved": TierStrong,
	"increased": TierStrong, "reduced": TierStrong, "automated": TierStrong,
	"shipped": TierStrong, "created": TierStrong, "achieved": TierStrong,
	"accelerated": TierStrong, "streamlined": TierStrong, "migrated": TierStrong,
	"redesigned": TierStrong, "eliminated": TierStrong,

	// Moderate
	"managed": TierModerate, "analyzed": TierModerate, "maintained": TierModerate,
	"coordinated": TierModerate, "supported": TierModerate, "collaborated": TierModerate,
	"contributed": TierModerate, "tested": TierModerate, "documented": TierModerate,
	"updated": TierModerate, "integrated": TierModerate, "deployed": TierModerate,
	"monitored": TierModerate, "reviewed": TierModerate,

	// Weak / filler
	"worked": TierWeak, "helped": TierWeak, "assisted": TierWeak,
	"participated": TierWeak, "responsible": TierWeak, "involved": TierWeak,
	"used": TierWeak, "handled": TierWeak, "did": TierWeak, "made": TierWeak,
	"tasked": TierWeak, "performed": TierWeak, "utilized": TierWeak,
}

// classifyLeadingVerb returns the tier of a bullet's leading word, after
// stripping list markers and punctuation.
func classifyLeadingVerb(bullet string) VerbTier {
	trimmed := strings.TrimLeft(strings.TrimSpace(bullet), "-*•· \t")
	fields := strings.Fields(trimmed)
	if len(fields) == 0 {
		return TierUnknown
	}
	first := strings.ToLower(strings.TrimRight(fields[0], ".,:;!?"))
	if tier, ok := verbTiers[first]; ok {
		return tier
	}
	return TierUnknown
}
