package usecase

import (
	"github.com/aalvaropc/navlink/internal/domain"
	"github.com/aalvaropc/navlink/internal/ports"
)

type InitWorkspace struct {
	initializer ports.WorkspaceInitializer
}

func NewInitWorkspace(initializer ports.WorkspaceInitializer) *InitWorkspace {
	return &InitWorkspace{initializer: initializer}
}

func (uc *InitWorkspace) Execute(root, baseURL string, force bool) error {
	return uc.initializer.Init(domain.WorkspaceSpec{Root: root, BaseURL: baseURL}, force)
}
