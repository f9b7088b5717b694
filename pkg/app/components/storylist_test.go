package components

import (
	"testing"
	"time"

	"storyforge/pkg/data"
)

func listStories(n int) []*data.Story {
	stories := make([]*data.Story, n)
	for i := range stories {
		stories[i] = &data.Story{
			ID:        string(rune('a' + i)),
			Title:     "Story " + string(rune('A'+i)),
			Genre:     "fantasy",
			Mood:      "calm",
			Style:     "watercolor",
			CreatedAt: time.Now(),
		}
	}
	return stories
}

func TestStoryListNavigation(t *testing.T) {
	list := NewStoryList()
	list.SetItems(listStories(3))

	if list.Selected().ID != "a" {
		t.Errorf("Expected first story selected, got %s", list.Selected().ID)
	}

	list.Next()
	if list.Selected().ID != "b" {
		t.Errorf("Expected second story, got %s", list.Selected().ID)
	}

	list.Next()
	list.Next() // wraps around
	if list.Selected().ID != "a" {
		t.Errorf("Expected wrap to first story, got %s", list.Selected().ID)
	}

	list.Prev() // wraps backward
	if list.Selected().ID != "c" {
		t.Errorf("Expected wrap to last story, got %s", list.Selected().ID)
	}
}

func TestStoryListEmpty(t *testing.T) {
	list := NewStoryList()

	if list.Selected() != nil {
		t.Error("Expected nil selection on empty list")
	}

	list.Next()
	list.Prev()
	if list.Selected() != nil {
		t.Error("Expected navigation on empty list to be safe")
	}
}

func TestStoryListSetItemsClampsSelection(t *testing.T) {
	list := NewStoryList()
	list.SetItems(listStories(3))
	list.SelectedIndex = 2

	list.SetItems(listStories(1))
	if list.SelectedIndex != 0 {
		t.Errorf("Expected selection clamped to 0, got %d", list.SelectedIndex)
	}
}
