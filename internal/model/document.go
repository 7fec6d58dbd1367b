package model

// Document 完整数据文档：启动时加载、每次变更后整体交给持久化层。
// JSON 结构与 data.json 一致：{ "members": [...], "slots": [...], "projects": [...] }
type Document struct {
	Members  []Member   `json:"members"`
	Slots    []TimeSlot `json:"slots"`
	Projects []Project  `json:"projects"`
}

// Clone 深拷贝文档（各元素均为值类型）
func (d *Document) Clone() *Document {
	out := &Document{
		Members:  make([]Member, len(d.Members)),
		Slots:    make([]TimeSlot, len(d.Slots)),
		Projects: make([]Project, len(d.Projects)),
	}
	copy(out.Members, d.Members)
	copy(out.Slots, d.Slots)
	copy(out.Projects, d.Projects)
	return out
}
