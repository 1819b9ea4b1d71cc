// =============================================================================
// GAEB Converter - Project Model
// =============================================================================
//
// Project is the root aggregate of a loaded GAEB DA XML document: format
// metadata, project info, award info, the participating addresses and the
// single optional bill of quantities. Instances are created by the reader or
// assembled in memory, serialized by the writer, and discarded afterwards.
//
// =============================================================================

package model

import "time"

// GAEBInfo mirrors the <GAEBInfo> block: format version and producer identity.
type GAEBInfo struct {
	Version    string
	VersDate   string
	Date       *time.Time // date portion only
	Time       string     // HH:MM:SS, kept verbatim
	ProgSystem string
	ProgName   string
}

// DefaultGAEBInfo returns the producer identity stamped onto new documents.
func DefaultGAEBInfo() GAEBInfo {
	return GAEBInfo{
		Version:    "3.2",
		VersDate:   "2013-10",
		ProgSystem: "gaebconv",
		ProgName:   "gaebconv v1.0.0",
	}
}

// PrjInfo mirrors the <PrjInfo> block.
type PrjInfo struct {
	Name          string
	Label         string
	Description   string
	Currency      string
	CurrencyLabel string

	// BidCommPerm signals that bidders may attach comments (X83 onwards).
	BidCommPerm bool
}

// DefaultPrjInfo returns PrjInfo with the standard Euro currency preset.
func DefaultPrjInfo() PrjInfo {
	return PrjInfo{Currency: "EUR", CurrencyLabel: "Euro"}
}

// AwardInfo mirrors the <AwardInfo> block: tender identification, deadlines
// and contract terms.
type AwardInfo struct {
	BoQID         string
	Currency      string
	CurrencyLabel string
	Cat           string
	OpenDate      string
	OpenTime      string
	EvalEnd       string
	SubmLoc       string
	CnstStart     string
	CnstEnd       string
	ContrNo       string
	ContrDate     string
	AcceptType    string
	WarrDur       string
	WarrUnit      string
	AwardNo       string
}

// DefaultAwardInfo returns AwardInfo with the standard Euro currency preset.
func DefaultAwardInfo() AwardInfo {
	return AwardInfo{Currency: "EUR", CurrencyLabel: "Euro"}
}

// Address is a postal address block used for OWN and CTR parties.
type Address struct {
	Name1   string
	Name2   string
	Name3   string
	Name4   string
	Street  string
	PCode   string
	City    string
	Country string
	Contact string
	Phone   string
	Fax     string
	Email   string
}

// Contractor mirrors the <CTR> block (contractor/bidder). The Has* flags
// record element presence so that empty elements round-trip.
type Contractor struct {
	Address       *Address
	DPNo          string
	AwardNo       string
	AcctsPayNo    string
	HasDPNo       bool
	HasAwardNo    bool
	HasAcctsPayNo bool
}

// Project is the root of the document model.
type Project struct {
	GAEBInfo   GAEBInfo
	PrjInfo    PrjInfo
	AwardInfo  AwardInfo
	Owner      *Address
	Contractor *Contractor
	Phase      Phase
	BoQ        *BoQ

	// AwardAddTexts are closing remarks attached at the Award level.
	AwardAddTexts []AddText

	// GAEBAddTexts are closing remarks attached at the document level.
	GAEBAddTexts []AddText
}

// NewProject returns a Project with producer defaults for the given phase.
func NewProject(phase Phase) *Project {
	return &Project{
		GAEBInfo:  DefaultGAEBInfo(),
		PrjInfo:   DefaultPrjInfo(),
		AwardInfo: DefaultAwardInfo(),
		Phase:     phase,
	}
}
