package state

import (
	"github.com/meshworks/meshcoord/pkg/models"
)

// Config edit buffers accumulate partial edits from the settings forms
// until a commit flushes them to the radio. Buffers survive a failed
// commit so the user never loses typed input.

// StageRadioConfig merges a partial radio edit into the edit buffer.
func (s *Store) StageRadioConfig(overlay models.RadioConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.editedRadio = s.editedRadio.Merge(overlay)
}

// StageModuleConfig merges a partial module edit into the edit buffer.
func (s *Store) StageModuleConfig(overlay models.ModuleConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.editedModule = s.editedModule.Merge(overlay)
}

// StageChannelConfig records pending edits for one channel index.
func (s *Store) StageChannelConfig(index int32, overlay models.ChannelConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.editedChannels[index]
	if !ok {
		cloned := overlay
		s.editedChannels[index] = &cloned

		return
	}

	if overlay.Name != nil {
		current.Name = overlay.Name
	}

	if overlay.Role != nil {
		current.Role = overlay.Role
	}

	if overlay.PSK != nil {
		current.PSK = overlay.PSK
	}
}

// EditedRadioConfig returns the staged radio edits.
func (s *Store) EditedRadioConfig() models.RadioConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.editedRadio
}

// EditedModuleConfig returns the staged module edits.
func (s *Store) EditedModuleConfig() models.ModuleConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.editedModule
}

// EditedChannels returns a copy of the staged channel edits.
func (s *Store) EditedChannels() map[int32]models.ChannelConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[int32]models.ChannelConfig, len(s.editedChannels))
	for index, cfg := range s.editedChannels {
		out[index] = *cfg
	}

	return out
}

// ClearStagedSections drops the edit buffers for the sections a commit
// flushed. Sections outside the commit keep their staged edits.
func (s *Store) ClearStagedSections(sections []models.ConfigSection) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, section := range sections {
		switch section {
		case models.SectionRadio:
			s.editedRadio = models.RadioConfig{}
		case models.SectionModule:
			s.editedModule = models.ModuleConfig{}
		case models.SectionChannel:
			s.editedChannels = make(map[int32]*models.ChannelConfig)
		}
	}
}
