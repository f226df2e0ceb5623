package annotate

// particles are adverbial particles that attach to a preceding verb
// ("carry out", "set up").
var particles = map[string]bool{
	"out": true, "up": true, "off": true, "down": true, "back": true,
}

// labelDependencies assigns a shallow dependency structure to one sentence.
// Heads are expressed in the annotation-wide token index space.
func labelDependencies(toks []Token) {
	n := len(toks)
	if n == 0 {
		return
	}
	attach := func(i int, dep string, head int) {
		toks[i].Dep = dep
		toks[i].Head = toks[head].Index
	}

	for i := range toks {
		if toks[i].POS == POSPunct {
			toks[i].Dep = DepPunct
		}
	}

	for i := range toks {
		if toks[i].Dep != "" {
			continue
		}
		lower := toks[i].Lower()
		if !beForms[lower] && !haveForms[lower] && !doForms[lower] && toks[i].Tag != "MD" {
			continue
		}
		j := nextNonAdverb(toks, i+1)
		if j < 0 {
			continue
		}
		switch {
		case beForms[lower] && toks[j].Tag == "VBN":
			attach(i, DepAuxPass, j)
			toks[i].POS = POSAux
		case isVerbTag(toks[j].Tag):
			attach(i, DepAux, j)
			toks[i].POS = POSAux
		}
	}

	for i := 1; i < n; i++ {
		if toks[i].Dep != "" {
			continue
		}
		switch {
		case toks[i].Tag == "RP":
			if v := previousVerb(toks, i); v >= 0 {
				attach(i, DepParticle, v)
				toks[i].POS = POSAdp
			}
		case particles[toks[i].Lower()] && isVerbTag(toks[i-1].Tag) && toks[i-1].Dep == "":
			attach(i, DepParticle, i-1)
			toks[i].POS = POSAdp
		}
	}

	root := findRoot(toks)
	toks[root].Dep = DepRoot
	toks[root].Head = toks[root].Index

	for i := 0; i+1 < n; i++ {
		if toks[i].Dep == "" && isNounPOS(toks[i].POS) && isNounPOS(toks[i+1].POS) {
			attach(i, DepCompound, i+1)
		}
	}

	for i := range toks {
		if toks[i].Dep != "" {
			continue
		}
		var dep string
		switch toks[i].POS {
		case POSDet:
			dep = DepDet
		case POSAdj:
			dep = DepAmod
		default:
			continue
		}
		if j := nextNominal(toks, i+1); j >= 0 {
			attach(i, dep, j)
		}
	}

	for v := range toks {
		if !isVerbTag(toks[v].Tag) || toks[v].Dep == DepAux || toks[v].Dep == DepAuxPass {
			continue
		}
		for j := v + 1; j < n; j++ {
			t := toks[j]
			if t.Dep == DepDet || t.Dep == DepAmod || t.Dep == DepCompound || t.Dep == DepParticle || t.POS == POSAdv || t.POS == POSNum {
				continue
			}
			if t.Dep == "" && (isNounPOS(t.POS) || t.POS == POSPron) {
				attach(j, DepDobj, v)
			}
			break
		}
	}

	passive := false
	for _, t := range toks {
		if t.Dep == DepAuxPass && t.Head == toks[root].Index {
			passive = true
		}
	}
	for i := root - 1; i >= 0; i-- {
		if toks[i].Dep == "" && (isNounPOS(toks[i].POS) || toks[i].POS == POSPron) {
			if passive {
				attach(i, DepNsubjPass, root)
			} else {
				attach(i, DepNsubj, root)
			}
			break
		}
	}

	for i := range toks {
		if toks[i].Dep == "" {
			attach(i, DepOther, root)
		} else if toks[i].Dep == DepPunct {
			toks[i].Head = toks[root].Index
		}
	}
}

// findRoot picks the first main verb, then the first copula, then the first
// non-punctuation token.
func findRoot(toks []Token) int {
	for i, t := range toks {
		if isVerbTag(t.Tag) && t.Dep == "" && !beForms[t.Lower()] {
			return i
		}
	}
	for i, t := range toks {
		if isVerbTag(t.Tag) && t.Dep == "" {
			return i
		}
	}
	for i, t := range toks {
		if t.Dep == "" {
			return i
		}
	}
	return 0
}

func nextNonAdverb(toks []Token, from int) int {
	for j := from; j < len(toks); j++ {
		if toks[j].POS == POSAdv {
			continue
		}
		return j
	}
	return -1
}

func previousVerb(toks []Token, before int) int {
	for j := before - 1; j >= 0; j-- {
		if isVerbTag(toks[j].Tag) {
			return j
		}
	}
	return -1
}

// nextNominal finds the noun a determiner or adjective modifies, stepping over
// other modifiers and compound parts.
func nextNominal(toks []Token, from int) int {
	for j := from; j < len(toks); j++ {
		t := toks[j]
		switch {
		case t.Dep == DepCompound, t.POS == POSAdj, t.POS == POSDet, t.POS == POSAdv, t.POS == POSNum:
			continue
		case isNounPOS(t.POS) || t.POS == POSPron:
			return j
		}
		return -1
	}
	return -1
}
