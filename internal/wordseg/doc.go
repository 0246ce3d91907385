// Package wordseg finds word boundaries in an M-text.
//
// Segmenters are registered per script through a Registry, which
// dispatches on the codepoint under the cursor and falls back to a
// generic letter-run segmenter. A Dictionary segmenter handles scripts
// written without word spaces by longest-match against a word list.
//
// Results are cached on the text itself as weak volatile properties,
// so any edit invalidates exactly the stretch it touches.
package wordseg
