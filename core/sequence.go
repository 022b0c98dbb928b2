// File: sequence.go
// Role: DNA alphabet helpers — reverse complement and traversal reading.
package core

// complement maps one DNA base (upper or lower case) to its complement.
// Unrecognized bytes (including 'N'/'n') pass through unchanged, matching
// common pangenome-tooling practice of preserving ambiguity codes verbatim.
func complement(b byte) byte {
	switch b {
	case 'A':
		return 'T'
	case 'C':
		return 'G'
	case 'G':
		return 'C'
	case 'T':
		return 'A'
	case 'a':
		return 't'
	case 'c':
		return 'g'
	case 'g':
		return 'c'
	case 't':
		return 'a'
	default:
		return b
	}
}

// ReverseComplement returns the reverse complement of seq.
func ReverseComplement(seq string) string {
	out := make([]byte, len(seq))
	for i := 0; i < len(seq); i++ {
		out[len(seq)-1-i] = complement(seq[i])
	}
	return string(out)
}

// Read returns the sequence a traversal yields: the node's forward sequence,
// or its reverse complement when t.Orientation is Reverse.
func (g *Graph) Read(t Traversal) (string, error) {
	n, err := g.GetNode(t.Node)
	if err != nil {
		return "", err
	}
	if t.Orientation == Reverse {
		return ReverseComplement(n.Sequence), nil
	}
	return n.Sequence, nil
}
