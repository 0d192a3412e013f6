package post

// DisplayState is the detail view's content state, derived once per load.
// Exactly one of AwaitingContent, GeneratingContent, PickingVariant, or
// VariantSelected.
type DisplayState interface {
	// Polling reports whether the state waits on background generation.
	Polling() bool
	displayState()
}

// AwaitingContent means no variants exist and generation has not started.
type AwaitingContent struct{}

// GeneratingContent means text generation is running.
type GeneratingContent struct{}

// PickingVariant means variants exist and none is selected.
type PickingVariant struct {
	Variants []ContentVariant
}

// VariantSelected means a variant was chosen. GeneratingImages is set until
// the first image arrives.
type VariantSelected struct {
	Selected         ContentVariant
	Others           []ContentVariant
	GeneratingImages bool
}

func (AwaitingContent) Polling() bool   { return false }
func (GeneratingContent) Polling() bool { return true }
func (PickingVariant) Polling() bool    { return false }
func (s VariantSelected) Polling() bool { return s.GeneratingImages }

func (AwaitingContent) displayState()   {}
func (GeneratingContent) displayState() {}
func (PickingVariant) displayState()    {}
func (VariantSelected) displayState()   {}

// Derive computes the display state of p. A selected id that matches no
// variant is treated as no selection.
func Derive(p Post) DisplayState {
	if len(p.Contents) == 0 {
		if p.Status == StatusGenerating {
			return GeneratingContent{}
		}
		return AwaitingContent{}
	}
	selected, ok := p.Variant(p.SelectedContentID)
	if !ok {
		return PickingVariant{Variants: p.Contents}
	}
	others := make([]ContentVariant, 0, len(p.Contents)-1)
	for _, variant := range p.Contents {
		if variant.ID != selected.ID {
			others = append(others, variant)
		}
	}
	return VariantSelected{
		Selected:         selected,
		Others:           others,
		GeneratingImages: len(p.Images) == 0,
	}
}
