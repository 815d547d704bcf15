package registry

import "moodgarden/internal/emotion"

// seedMoods are the fixed demo entries present on every load, so the garden
// is never empty when a visitor arrives.
var seedMoods = []struct {
	name      string
	category  emotion.Category
	intensity int
	message   string
}{
	{"晨曦", emotion.Joy, 8, "项目终于上线了，想和所有人分享这份喜悦"},
	{"白鹭", emotion.Calm, 5, "傍晚在江边散步，风很温柔"},
	{"苔米", emotion.Sadness, 6, "养了三年的猫今天走丢了"},
	{"一水", emotion.Anxiety, 7, "下周要答辩了，一直睡不好"},
	{"惊蛰", emotion.Anger, 6, "排了两小时的队，到我的时候说停止办理"},
	{"未眠", emotion.Fatigue, 9, "连续加班一个月，感觉被掏空了"},
	{"栀子", emotion.Joy, 6, "妹妹收到了大学录取通知书"},
	{"沉舟", emotion.Calm, 4, "把房间收拾干净，点了一支香薰"},
}

// Seed resets the registry to the fixed demo moods. The change callback
// fires once at the end, not per entry.
func (r *Registry) Seed() {
	r.entries = r.entries[:0]
	for _, s := range seedMoods {
		r.appendEntry(s.name, s.category, s.intensity, s.message)
	}
	r.changed()
}
