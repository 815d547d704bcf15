package registry

import (
	"moodgarden/internal/emotion"
	"moodgarden/internal/logging"
)

// Pools the synthetic visitor moods are drawn from. Kept small on purpose;
// the point is a garden that feels inhabited, not a chat bot.
var (
	syntheticNames = []string{
		"夜风", "小满", "远山", "青柠", "流云",
		"拾光", "半夏", "听雨", "南乔", "北辞",
	}
	syntheticMessages = []string{
		"今天的晚霞很好看",
		"加班到现在，终于可以休息了",
		"突然很想念老朋友",
		"喝到了一杯很棒的咖啡",
		"考试结束了，如释重负",
		"一个人走了很远的路",
		"窗外在下雨，心里很安静",
		"有点迷茫，但还在往前走",
		"收到了一份意外的礼物",
		"什么都不想说，就想待一会儿",
	}
)

// InjectSynthetic appends a randomly generated visitor mood, then truncates
// the registry to the most recent window so long-running sessions do not
// crowd the garden. Order is preserved.
func (r *Registry) InjectSynthetic() *MoodEntry {
	name := syntheticNames[r.rng.Intn(len(syntheticNames))]
	cats := emotion.All()
	category := cats[r.rng.Intn(len(cats))]
	intensity := 3 + r.rng.Intn(6) // 3..8, synthetic visitors stay mid-range
	message := syntheticMessages[r.rng.Intn(len(syntheticMessages))]

	entry := r.appendEntry(name, category, intensity, message)

	if len(r.entries) > maxEntries {
		keep := r.entries[len(r.entries)-maxEntries:]
		trimmed := make([]*MoodEntry, maxEntries)
		copy(trimmed, keep)
		r.entries = trimmed
	}

	logging.Registry("synthetic id=%d category=%s total=%d", entry.ID, category.Label(), len(r.entries))
	r.changed()
	return entry
}
