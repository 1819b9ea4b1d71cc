package model

import "github.com/beevik/etree"

// AddText is a supplementary free-text block (Zusatztext) attachable at
// document, award, BoQ, category and item level. Outline and detail are held
// as plain text plus the preserved raw XML fragment.
type AddText struct {
	OutlineText string
	OutlineRaw  *etree.Element
	DetailText  string
	DetailRaw   *etree.Element
}
