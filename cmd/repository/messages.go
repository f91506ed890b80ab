// SPDX-License-Identifier: Apache-2.0
package repository

import (
	repo "github.com/snapvault/snapctl/pkg/repository"
)

// TabCompleteMsg signals a tab has completed
type TabCompleteMsg struct {
	TabIndex int
}

// DraftUpdateMsg carries a draft patch from a tab to the wizard
type DraftUpdateMsg struct {
	Patch repo.Patch
}

// TabErrorMsg carries error from a tab to parent
type TabErrorMsg struct {
	TabIndex int
	Error    error
}
