package mapper

import "strings"

// SourceKind classifies which provider's export a header set resembles.
type SourceKind string

const (
	SourceCoStar  SourceKind = "costar"
	SourceCrexi   SourceKind = "crexi"
	SourceReonomy SourceKind = "reonomy"
	SourceManual  SourceKind = "manual"
)

// Sources returns all recognized source kinds.
func Sources() []SourceKind {
	return []SourceKind{SourceCoStar, SourceCrexi, SourceReonomy, SourceManual}
}

// Fingerprint columns: headers strongly indicative of one specific provider.
// Detection counts exact (normalized) membership, not substring matches, so a
// generic header like "Address" never votes for anyone.
var (
	costarFingerprints = []string{
		"propertyid",
		"star rating",
		"submarket name",
		"building class",
		"secondary type",
		"market name",
		"building park",
		"costar research link",
	}
	crexiFingerprints = []string{
		"crexi",
		"property link",
		"brokerage",
		"opportunity zone",
		"investment highlights",
		"days on market",
	}
)

// crexiMarker is distinctive enough to classify a file on its own, even when
// the rest of the header row looks generic.
const crexiMarker = "crexi"

// fingerprintThreshold is the number of fingerprint hits required before a
// header set is attributed to a provider.
const fingerprintThreshold = 2

// DetectSource classifies a raw header row into a SourceKind.
//
// Decision order: CoStar wins with >= 2 fingerprint hits, then Crexi with
// >= 2 hits, then Crexi again if the lone "crexi" marker column is present,
// else manual. SourceReonomy is a recognized kind but is never produced here;
// Reonomy exports are only imported with an explicit source override.
//
// Never fails: the worst case is SourceManual.
func DetectSource(headers []string) SourceKind {
	present := make(map[string]struct{}, len(headers))
	for _, h := range headers {
		present[normalizeHeader(h)] = struct{}{}
	}

	if countHits(present, costarFingerprints) >= fingerprintThreshold {
		return SourceCoStar
	}
	if countHits(present, crexiFingerprints) >= fingerprintThreshold {
		return SourceCrexi
	}
	if _, ok := present[crexiMarker]; ok {
		return SourceCrexi
	}
	return SourceManual
}

func countHits(present map[string]struct{}, fingerprints []string) int {
	hits := 0
	for _, f := range fingerprints {
		if _, ok := present[f]; ok {
			hits++
		}
	}
	return hits
}

// normalizeHeader lowercases and collapses internal whitespace so that
// " Star  Rating " and "star rating" compare equal. The raw header is still
// stored verbatim everywhere it surfaces to the operator.
func normalizeHeader(h string) string {
	return strings.ToLower(strings.Join(strings.Fields(h), " "))
}
