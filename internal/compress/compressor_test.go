package compress

import (
	"testing"

	"github.com/OscarLawrence/UCP/internal/bias"
	"github.com/OscarLawrence/UCP/internal/logic"
)

func analyze(text string) Result {
	return Compress(text, bias.Detect(text), logic.Extract(text))
}

func TestCompressCleanTextIsIdentity(t *testing.T) {
	text := "The deploy failed twice on Tuesday."
	result := analyze(text)

	if result.CompressedText != text {
		t.Errorf("compressed = %q, want unchanged input", result.CompressedText)
	}
	if result.CompressionRatio != 1.0 {
		t.Errorf("ratio = %v, want 1.0", result.CompressionRatio)
	}
	if result.BiasScore != 0 {
		t.Errorf("bias score = %v, want 0", result.BiasScore)
	}
}

func TestCompressRemovesBiasSpans(t *testing.T) {
	text := "Obviously this amazing breakthrough will change everything."
	result := analyze(text)

	if result.CompressedText != "this will change everything." {
		t.Errorf("compressed = %q", result.CompressedText)
	}
	if result.CompressionRatio >= 1.0 {
		t.Errorf("ratio = %v, want < 1.0", result.CompressionRatio)
	}
	if result.BiasScore <= 0 {
		t.Errorf("bias score = %v, want > 0", result.BiasScore)
	}
	if result.OriginalText != text {
		t.Errorf("original text not preserved: %q", result.OriginalText)
	}
}

func TestCompressReassemblesChain(t *testing.T) {
	text := "The build is slow because the cache misses, therefore clearly we should pin dependencies."
	result := analyze(text)

	want := "The build is slow. the cache misses. we should pin dependencies."
	if result.CompressedText != want {
		t.Errorf("compressed = %q, want %q", result.CompressedText, want)
	}
	if result.CompressionRatio >= 1.0 {
		t.Errorf("ratio = %v, want < 1.0", result.CompressionRatio)
	}
}

func TestCompressSecondPassIsNoop(t *testing.T) {
	first := analyze("The build is slow because the cache misses, therefore clearly we should pin dependencies.")
	second := analyze(first.CompressedText)

	if second.CompressedText != first.CompressedText {
		t.Errorf("second pass changed text:\nfirst:  %q\nsecond: %q",
			first.CompressedText, second.CompressedText)
	}
	if second.CompressionRatio != 1.0 {
		t.Errorf("second pass ratio = %v, want 1.0", second.CompressionRatio)
	}
}

func TestCompressNeverEmpty(t *testing.T) {
	// Removing the only word would leave nothing, so the input survives.
	text := "Obviously"
	result := analyze(text)

	if result.CompressedText != text {
		t.Errorf("compressed = %q, want original preserved", result.CompressedText)
	}
	if result.CompressionRatio != 1.0 {
		t.Errorf("ratio = %v, want 1.0", result.CompressionRatio)
	}
}

func TestCompressNeverLonger(t *testing.T) {
	texts := []string{
		"Obviously this amazing breakthrough will change everything.",
		"If we automate the pipeline, then deployment errors will decrease.",
		"basically",
		"",
	}
	for _, text := range texts {
		result := analyze(text)
		if len(result.CompressedText) > len(text) {
			t.Errorf("compressed longer than input for %q: %q", text, result.CompressedText)
		}
	}
}

func TestEnhancementFloor(t *testing.T) {
	// Identity compression with no chain bottoms out at the floor.
	result := analyze("The deploy failed twice on Tuesday.")
	if result.EnhancementScore != 0.3 {
		t.Errorf("enhancement = %v, want floor 0.3", result.EnhancementScore)
	}
}

func TestEnhancementRewardsChainAndCompression(t *testing.T) {
	result := analyze("The build is slow because the cache misses, therefore clearly we should pin dependencies.")
	if result.EnhancementScore <= 0.3 {
		t.Errorf("enhancement = %v, want above the floor", result.EnhancementScore)
	}
}
