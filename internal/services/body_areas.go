package services

import (
	"errors"

	"github.com/terraincognita07/hospitalconnect/internal/models"
)

var ErrUnknownBodyArea = errors.New("unknown body area")

// AreaSelection is the set of selected body areas, kept in selection order.
type AreaSelection struct {
	selected []string
}

func NewAreaSelection() *AreaSelection {
	return &AreaSelection{selected: []string{}}
}

// Toggle selects id, or deselects it when already selected. It reports
// whether id is selected afterwards.
func (selection *AreaSelection) Toggle(id string) (bool, error) {
	if !models.IsKnownBodyArea(id) {
		return false, ErrUnknownBodyArea
	}
	for index, existing := range selection.selected {
		if existing == id {
			selection.selected = append(selection.selected[:index], selection.selected[index+1:]...)
			return false, nil
		}
	}
	selection.selected = append(selection.selected, id)
	return true, nil
}

func (selection *AreaSelection) Selected() []string {
	result := make([]string, len(selection.selected))
	copy(result, selection.selected)
	return result
}

func (selection *AreaSelection) Len() int {
	return len(selection.selected)
}

func (selection *AreaSelection) Clear() {
	selection.selected = []string{}
}
