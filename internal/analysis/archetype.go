package analysis

import (
	"math"
	"sort"

	"scout-analyzer/internal/config"
	"scout-analyzer/internal/match"
)

// UnclassifiedName is the null archetype result. It is a valid output, not an
// error: downstream consumers render it like any other classification.
const (
	UnclassifiedName  = "MIXED/UNCLASSIFIED"
	unclassifiedPlan  = "ADAPT TO FLOW. PLAY FOR STANDARD OBJECTIVES."
	unclassifiedBreak = "NO DOMINANT PATTERN IN SAMPLE."
)

// CompositionSample is the five champions one team played together in a
// single match, plus that match's outcome.
type CompositionSample struct {
	MatchID   string
	Champions map[match.Lane]string
	Win       bool
	Duration  int
	GameStart int64

	// ObjectiveLean is the share of first-objective flags the team secured
	// in this match; LeanKnown is false when no flag was recorded.
	ObjectiveLean float64
	LeanKnown     bool
}

// BuildCompositions groups observations into composition samples. Matches
// without exactly one champion per lane are skipped; output is ordered by
// match identifier for determinism.
func BuildCompositions(observations []match.Observation) []CompositionSample {
	byMatch := make(map[string][]match.Observation)
	for _, o := range observations {
		byMatch[o.MatchID] = append(byMatch[o.MatchID], o)
	}

	matchIDs := make([]string, 0, len(byMatch))
	for id := range byMatch {
		matchIDs = append(matchIDs, id)
	}
	sort.Strings(matchIDs)

	var samples []CompositionSample
	for _, id := range matchIDs {
		rows := byMatch[id]
		champions := make(map[match.Lane]string, len(match.Lanes))
		for _, o := range rows {
			if _, dup := champions[o.Role]; dup {
				champions = nil
				break
			}
			champions[o.Role] = o.Champion
		}
		if len(champions) != len(match.Lanes) {
			continue
		}

		first := rows[0]
		sample := CompositionSample{
			MatchID:   id,
			Champions: champions,
			Win:       first.Win,
			Duration:  first.GameDuration,
			GameStart: first.GameStart,
		}

		var secured, present float64
		if first.FirstDragon != nil {
			present++
			if *first.FirstDragon {
				secured++
			}
		}
		if first.FirstTower != nil {
			present++
			if *first.FirstTower {
				secured++
			}
		}
		if present > 0 {
			sample.ObjectiveLean = secured / present
			sample.LeanKnown = true
		}

		samples = append(samples, sample)
	}
	return samples
}

// Signature describes a composition (or an average of compositions) by its
// champion role tags, game duration, and objective-control lean.
type Signature struct {
	TagCounts     map[string]float64
	AvgDuration   float64
	ObjectiveLean float64
	LeanKnown     bool
}

func sampleSignature(s CompositionSample, tags map[string]string) Signature {
	sig := Signature{
		TagCounts:     make(map[string]float64),
		AvgDuration:   float64(s.Duration),
		ObjectiveLean: s.ObjectiveLean,
		LeanKnown:     s.LeanKnown,
	}
	for _, lane := range match.Lanes {
		if tag, ok := tags[s.Champions[lane]]; ok {
			sig.TagCounts[tag]++
		}
	}
	return sig
}

func aggregateSignature(samples []CompositionSample, tags map[string]string) Signature {
	agg := Signature{TagCounts: make(map[string]float64)}
	var leanSamples float64
	for _, s := range samples {
		sig := sampleSignature(s, tags)
		for tag, n := range sig.TagCounts {
			agg.TagCounts[tag] += n
		}
		agg.AvgDuration += sig.AvgDuration
		if sig.LeanKnown {
			agg.ObjectiveLean += sig.ObjectiveLean
			leanSamples++
		}
	}
	n := float64(len(samples))
	for tag := range agg.TagCounts {
		agg.TagCounts[tag] /= n
	}
	agg.AvgDuration /= n
	if leanSamples > 0 {
		agg.ObjectiveLean /= leanSamples
		agg.LeanKnown = true
	}
	return agg
}

// ArchetypeResult is the classified team composition archetype.
type ArchetypeResult struct {
	Name    string
	Plan    string
	Break   string
	Matched bool
	Samples int

	// Representative is the composition closest to the aggregate signature,
	// listed in canonical lane order.
	Representative      []string
	RepresentativeMatch string
}

// Unclassified returns the null archetype result for the given sample count.
func Unclassified(samples int) ArchetypeResult {
	return ArchetypeResult{
		Name:    UnclassifiedName,
		Plan:    unclassifiedPlan,
		Break:   unclassifiedBreak,
		Matched: false,
		Samples: samples,
	}
}

// ClassifyArchetype matches the aggregate composition signature against the
// rule set. Each rule's score is the number of satisfied required predicates;
// a violated forbidden predicate disqualifies the rule. The best score wins,
// ties broken by declaration order. A zero best score, or an empty sample
// set, yields MIXED/UNCLASSIFIED.
func ClassifyArchetype(samples []CompositionSample, rules RuleSet, cfg config.Config) ArchetypeResult {
	if len(samples) == 0 {
		return Unclassified(0)
	}

	agg := aggregateSignature(samples, rules.Tags)

	best := -1
	var bestRule *ArchetypeRule
	for i := range rules.Archetypes {
		rule := &rules.Archetypes[i]
		score, ok := scoreRule(rule, agg, cfg)
		if ok && score > best {
			best = score
			bestRule = rule
		}
	}
	if bestRule == nil || best == 0 {
		return Unclassified(len(samples))
	}

	result := ArchetypeResult{
		Name:    bestRule.Name,
		Plan:    bestRule.Plan,
		Break:   bestRule.Break,
		Matched: true,
		Samples: len(samples),
	}

	rep := representative(samples, agg, rules.Tags, cfg)
	result.RepresentativeMatch = rep.MatchID
	for _, lane := range match.Lanes {
		result.Representative = append(result.Representative, rep.Champions[lane])
	}
	return result
}

// scoreRule counts satisfied required predicates. ok is false when a
// forbidden predicate holds.
func scoreRule(rule *ArchetypeRule, sig Signature, cfg config.Config) (int, bool) {
	for _, p := range rule.Forbidden {
		if p.holds(sig, cfg) {
			return 0, false
		}
	}
	score := 0
	for _, p := range rule.Required {
		if p.holds(sig, cfg) {
			score++
		}
	}
	return score, true
}

func (p Predicate) holds(sig Signature, cfg config.Config) bool {
	switch {
	case p.Tag != "":
		return sig.TagCounts[p.Tag] >= p.MinCount
	case p.Duration == DurationUnderCutoff:
		return sig.AvgDuration < float64(cfg.EarlyGameCutoffSeconds)
	case p.Duration == DurationOverCutoff:
		return sig.AvgDuration >= float64(cfg.EarlyGameCutoffSeconds)
	case p.ObjectiveLeanMin != nil:
		return sig.LeanKnown && sig.ObjectiveLean >= *p.ObjectiveLeanMin
	}
	return false
}

// representative selects the sample with the minimum signature distance to
// the aggregate, ties broken by most recent game, then by match identifier.
func representative(samples []CompositionSample, agg Signature, tags map[string]string, cfg config.Config) CompositionSample {
	bestIdx := 0
	bestDist := math.Inf(1)
	for i, s := range samples {
		d := signatureDistance(sampleSignature(s, tags), agg, cfg)
		switch {
		case d < bestDist:
			bestIdx, bestDist = i, d
		case d == bestDist:
			cur := samples[bestIdx]
			if s.GameStart > cur.GameStart ||
				(s.GameStart == cur.GameStart && s.MatchID < cur.MatchID) {
				bestIdx = i
			}
		}
	}
	return samples[bestIdx]
}

func signatureDistance(a, b Signature, cfg config.Config) float64 {
	tags := make(map[string]bool)
	for tag := range a.TagCounts {
		tags[tag] = true
	}
	for tag := range b.TagCounts {
		tags[tag] = true
	}

	var d float64
	for tag := range tags {
		d += math.Abs(a.TagCounts[tag] - b.TagCounts[tag])
	}
	d += math.Abs(a.AvgDuration-b.AvgDuration) / float64(cfg.EarlyGameCutoffSeconds)
	if a.LeanKnown && b.LeanKnown {
		d += math.Abs(a.ObjectiveLean - b.ObjectiveLean)
	}
	return d
}
