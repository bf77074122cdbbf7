package domain

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

const (
	// MatchStatusPending is the only status the live flow writes; a pair of
	// pending intents in opposite directions is a mutual match.
	MatchStatusPending = "pending"
)

const (
	MembershipFree    = "free"
	MembershipPremium = "premium"
	MembershipElite   = "elite"
)

const (
	MembershipStatusActive  = "active"
	MembershipStatusExpired = "expired"
)

const (
	NotificationInfo    = "info"
	NotificationWarning = "warning"
	NotificationMatch   = "match"
)

const (
	WarningSeverityLow    = "low"
	WarningSeverityMedium = "medium"
	WarningSeverityHigh   = "high"
)

// MaxMessageLength is enforced at the send boundary, before any store write.
const MaxMessageLength = 1000

// MaxUploadBytes is checked before an image is handed to object storage.
const MaxUploadBytes = 5 << 20

// Provinces a profile can register under.
var Provinces = []string{
	"Drenthe", "Flevoland", "Friesland", "Gelderland", "Groningen", "Limburg",
	"Noord-Brabant", "Noord-Holland", "Overijssel", "Utrecht", "Zeeland", "Zuid-Holland",
}

// HandicapRanges are the coarse buckets members pick from; stored as-is.
var HandicapRanges = []string{"0-10", "11-20", "21-30", "30+"}

func ValidProvince(p string) bool {
	for _, v := range Provinces {
		if v == p {
			return true
		}
	}
	return false
}

func ValidHandicapRange(h string) bool {
	for _, v := range HandicapRanges {
		if v == h {
			return true
		}
	}
	return false
}

func ValidMembershipType(t string) bool {
	return t == MembershipFree || t == MembershipPremium || t == MembershipElite
}
