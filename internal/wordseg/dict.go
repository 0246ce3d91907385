package wordseg

import (
	"fmt"
	"os"
	"unicode"

	"github.com/rivo/uniseg"
	"gopkg.in/yaml.v3"

	"github.com/textforge/mtext/internal/mtext"
)

// Dictionary segments scripts written without word spaces by greedy
// longest-match against a word list. Candidate boundaries follow
// grapheme clusters, so a match never splits a base from its marks.
type Dictionary struct {
	script *unicode.RangeTable
	path   string

	words   map[string]struct{}
	longest int // longest word, in grapheme clusters
}

// dictFile is the on-disk word list layout.
type dictFile struct {
	Script string   `yaml:"script"`
	Words  []string `yaml:"words"`
}

// NewDictionary builds a segmenter for characters of script, loading
// its word list from the YAML file at path on Init.
func NewDictionary(path string, script *unicode.RangeTable) *Dictionary {
	return &Dictionary{script: script, path: path}
}

func (d *Dictionary) Init() error {
	data, err := os.ReadFile(d.path)
	if err != nil {
		return fmt.Errorf("wordseg: load dictionary: %w", err)
	}
	var f dictFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("wordseg: parse dictionary %s: %w", d.path, err)
	}
	d.words = make(map[string]struct{}, len(f.Words))
	for _, w := range f.Words {
		d.words[w] = struct{}{}
		if n := clusterCount(w); n > d.longest {
			d.longest = n
		}
	}
	return nil
}

func (d *Dictionary) Fini() {
	d.words = nil
	d.longest = 0
}

func (d *Dictionary) Segment(m *mtext.MText, pos int) (int, int, bool) {
	runFrom, runTo := d.scriptRun(m, pos)
	run := make([]rune, 0, runTo-runFrom)
	for i := runFrom; i < runTo; i++ {
		r, _ := m.Char(i)
		run = append(run, r)
	}
	starts := clusterStarts(string(run))
	rel := pos - runFrom

	// greedy longest-match walk over cluster boundaries
	i := 0
	for i < len(starts)-1 {
		j := d.match(run, starts, i)
		segFrom, segTo := starts[i], 0
		in := j > i
		if in {
			segTo = starts[j]
		} else {
			j = i + 1
			segTo = starts[j]
		}
		if rel >= segFrom && rel < segTo {
			return runFrom + segFrom, runFrom + segTo, in
		}
		i = j
	}
	return runFrom, runTo, false
}

// match returns the largest cluster index j > i such that the clusters
// [i, j) spell a dictionary word, or i when none do.
func (d *Dictionary) match(run []rune, starts []int, i int) int {
	hi := i + d.longest
	if hi > len(starts)-1 {
		hi = len(starts) - 1
	}
	for j := hi; j > i; j-- {
		if _, ok := d.words[string(run[starts[i]:starts[j]])]; ok {
			return j
		}
	}
	return i
}

// scriptRun expands pos to the maximal surrounding run of this
// segmenter's script.
func (d *Dictionary) scriptRun(m *mtext.MText, pos int) (int, int) {
	n := m.Len()
	from, to := pos, pos+1
	for from > 0 {
		r, _ := m.Char(from - 1)
		if !unicode.Is(d.script, r) {
			break
		}
		from--
	}
	for to < n {
		r, _ := m.Char(to)
		if !unicode.Is(d.script, r) {
			break
		}
		to++
	}
	return from, to
}

// clusterStarts returns the rune offsets of each grapheme cluster in s
// plus a final sentinel at the total rune count.
func clusterStarts(s string) []int {
	starts := []int{0}
	off := 0
	state := -1
	for len(s) > 0 {
		var cluster string
		cluster, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
		off += len([]rune(cluster))
		starts = append(starts, off)
	}
	return starts
}

func clusterCount(s string) int {
	return uniseg.GraphemeClusterCount(s)
}
