package prompts

import (
	_ "embed"
)

// Stage instruction templates. Each is a Go template rendered by RenderStage.
var (
	//go:embed template/full_greet.txt
	FullGreet string
	//go:embed template/full_research.txt
	FullResearch string
	//go:embed template/full_order_check.txt
	FullOrderCheck string
	//go:embed template/full_resolve.txt
	FullResolve string
	//go:embed template/full_review.txt
	FullReview string

	//go:embed template/fast_research.txt
	FastResearch string
	//go:embed template/fast_order_lookup.txt
	FastOrderLookup string
	//go:embed template/fast_review.txt
	FastReview string
)
