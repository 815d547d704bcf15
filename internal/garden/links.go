package garden

import "moodgarden/internal/emotion"

// Link is a faint connector drawn between two nodes of the same category
// while one of them is selected.
type Link struct {
	FromX, FromY float64
	ToX, ToY     float64
	Category     emotion.Category
}

// AffinityLinks returns the connectors from the selected node to every other
// node sharing its category. No selection, or no kin, means no links.
func AffinityLinks(nodes []*Node, selectedID int64) []Link {
	var sel *Node
	for _, n := range nodes {
		if n.ID == selectedID {
			sel = n
			break
		}
	}
	if sel == nil {
		return nil
	}
	var links []Link
	for _, n := range nodes {
		if n.ID == sel.ID || n.Category != sel.Category {
			continue
		}
		links = append(links, Link{
			FromX: sel.X, FromY: sel.Y,
			ToX: n.X, ToY: n.Y,
			Category: sel.Category,
		})
	}
	return links
}
