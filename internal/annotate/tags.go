package annotate

import "strings"

// Universal coarse part-of-speech tags.
const (
	POSNoun  = "NOUN"
	POSPropn = "PROPN"
	POSVerb  = "VERB"
	POSAux   = "AUX"
	POSAdj   = "ADJ"
	POSAdv   = "ADV"
	POSAdp   = "ADP"
	POSDet   = "DET"
	POSPron  = "PRON"
	POSNum   = "NUM"
	POSPart  = "PART"
	POSCconj = "CCONJ"
	POSIntj  = "INTJ"
	POSPunct = "PUNCT"
	POSOther = "X"
)

// Dependency labels produced by the labeler.
const (
	DepRoot      = "ROOT"
	DepAux       = "aux"
	DepAuxPass   = "auxpass"
	DepParticle  = "prt"
	DepDet       = "det"
	DepAmod      = "amod"
	DepCompound  = "compound"
	DepDobj      = "dobj"
	DepNsubj     = "nsubj"
	DepNsubjPass = "nsubjpass"
	DepPunct     = "punct"
	DepOther     = "dep"
)

var beForms = map[string]bool{
	"be": true, "is": true, "are": true, "am": true, "was": true,
	"were": true, "been": true, "being": true,
}

var haveForms = map[string]bool{"have": true, "has": true, "had": true, "having": true}

var doForms = map[string]bool{"do": true, "does": true, "did": true}

// UniversalPOS maps a Penn Treebank tag and surface form to a coarse tag.
func UniversalPOS(tag, text string) string {
	lower := strings.ToLower(text)
	switch {
	case tag == "MD":
		return POSAux
	case strings.HasPrefix(tag, "VB"):
		if beForms[lower] {
			return POSAux
		}
		return POSVerb
	case tag == "NN" || tag == "NNS":
		return POSNoun
	case tag == "NNP" || tag == "NNPS":
		return POSPropn
	case strings.HasPrefix(tag, "JJ"):
		return POSAdj
	case strings.HasPrefix(tag, "RB") || tag == "WRB":
		return POSAdv
	case tag == "IN" || tag == "RP":
		return POSAdp
	case tag == "TO" || tag == "POS":
		return POSPart
	case tag == "DT" || tag == "PDT" || tag == "WDT":
		return POSDet
	case tag == "PRP" || tag == "PRP$" || tag == "WP" || tag == "WP$" || tag == "EX":
		return POSPron
	case tag == "CD":
		return POSNum
	case tag == "CC":
		return POSCconj
	case tag == "UH":
		return POSIntj
	case isPunctTag(tag):
		return POSPunct
	default:
		return POSOther
	}
}

func isPunctTag(tag string) bool {
	switch tag {
	case ".", ",", ":", "``", "''", "(", ")", "-LRB-", "-RRB-", "#", "$", "HYPH", "NFP", "SYM":
		return true
	}
	return false
}

func isVerbTag(tag string) bool {
	return strings.HasPrefix(tag, "VB")
}

func isNounPOS(pos string) bool {
	return pos == POSNoun || pos == POSPropn
}
