// File: interfaces.go
// Role: the external collaborator boundary for C6 (spec.md §4.4, §6):
//       record shapes and interfaces construct consumes to build a graph
//       from a reference interval plus VCF-derived allele bubbles. No
//       parsing lives here — callers plug in a real FASTA/VCF reader.
package vcfsrc

// ContigProvider gives construct random access to reference sequence. A
// real implementation wraps an indexed FASTA reader; construct only ever
// asks for one contiguous substring per build.
type ContigProvider interface {
	Substring(contig string, start, end int) (string, error)
}

// Genotype is one sample's call at a VariantRecord. Alleles indexes into
// VariantRecord.Alt (0 would mean "REF" in VCF terms, so construct treats
// allele index i as Alt[i-1] for i>0 and Ref for i==0); -1 marks a missing
// call.
type Genotype struct {
	Sample  string
	Alleles []int
	Phased  bool
}

// VariantRecord is one VCF record's relevant fields: position is 0-based,
// matching pathidx.Position and core's forward-strand offset convention.
type VariantRecord struct {
	Contig    string
	Position  int
	Ref       string
	Alt       []string
	Genotypes []Genotype
}

// SubAllele is one piece of a decomposed bubble: the reference is replaced
// by alt starting at RefPosition (0-based, contig-relative), exactly the
// shape pathidx.Edit's FromLen/ToLen/Sequence fields describe but phrased in
// terms an external VCF decomposer would naturally produce.
type SubAllele struct {
	RefPosition int
	Ref, Alt    string
}

// BubbleDecomposer turns one VariantRecord into, for each ALT sequence, the
// list of sub-alleles it decomposes to — e.g. splitting a multi-allelic or
// complex record into independent SNP/indel bubbles. External collaborator
// (VCF-to-allele decomposer); vgraph never parses VCF itself.
type BubbleDecomposer interface {
	Decompose(rec VariantRecord) (map[string][]SubAllele, error)
}
