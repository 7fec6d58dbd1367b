package service

import (
	"context"
	"sort"
	"strings"

	"slot-planner/internal/dto"
	"slot-planner/internal/model"
	"slot-planner/internal/planner"
)

// ── 项目目录 ──

// ListProjects 按名称排序，附带使用该项目的时间段数
func (s *plannerService) ListProjects(_ context.Context) ([]dto.ProjectResponse, error) {
	var result []dto.ProjectResponse
	err := s.read(func(st *state) error {
		usage := projectUsage(st)
		result = make([]dto.ProjectResponse, 0, len(st.projects))
		for _, p := range st.projects {
			result = append(result, dto.ProjectResponse{ID: p.ID, Name: p.Name, SlotCount: usage[p.Name]})
		}
		return nil
	})
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, err
}

func (s *plannerService) CreateProject(ctx context.Context, req *dto.CreateProjectRequest) (*dto.ProjectResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, planner.ErrProjectRequired
	}

	project := model.Project{ID: s.ids.NewID(), Name: name}
	err := s.mutate(ctx, "create_project", func(next *state) (bool, error) {
		for _, p := range next.projects {
			if p.Name == name {
				return false, planner.ErrProjectExists
			}
		}
		next.projects = append(next.projects, project)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return &dto.ProjectResponse{ID: project.ID, Name: project.Name}, nil
}

// DeleteProject 仍被时间段使用的项目不可删除
func (s *plannerService) DeleteProject(ctx context.Context, id string) error {
	return s.mutate(ctx, "delete_project", func(next *state) (bool, error) {
		for i, p := range next.projects {
			if p.ID != id {
				continue
			}
			if projectUsage(next)[p.Name] > 0 {
				return false, planner.ErrProjectInUse
			}
			next.projects = append(next.projects[:i], next.projects[i+1:]...)
			return true, nil
		}
		return false, planner.ErrProjectNotFound
	})
}

func projectUsage(st *state) map[string]int {
	usage := make(map[string]int)
	for _, slot := range st.store.Slots() {
		usage[slot.Project]++
	}
	return usage
}
