package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/sahilchouksey/academic-records-api/model"
	"github.com/sahilchouksey/academic-records-api/utils/auth"
)

// CleanupTokenBlacklist removes blacklist entries whose tokens have expired.
// Expired tokens fail signature validation anyway; the rows only take space.
func (m *CronManager) CleanupTokenBlacklist() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	jobName := "cleanup_token_blacklist"

	blacklist := auth.NewBlacklistService(m.db)
	if err := blacklist.CleanupExpiredTokens(ctx); err != nil {
		m.logJobError(jobName, fmt.Errorf("cleanup expired tokens: %w", err))
		return
	}

	m.logJobComplete(jobName, "Expired blacklist entries removed")
}

// SweepOrphanedAssignments deletes course assignments pointing at a professor
// or course that no longer exists. The API never produces these on its own;
// rows touched outside it can.
func (m *CronManager) SweepOrphanedAssignments() {
	jobName := "sweep_orphaned_assignments"

	missingProfessor := m.db.
		Where("professor_id NOT IN (?)", m.db.Model(&model.Professor{}).Select("id")).
		Delete(&model.CourseAssignment{})
	if missingProfessor.Error != nil {
		m.logJobError(jobName, fmt.Errorf("sweep assignments without professor: %w", missingProfessor.Error))
		return
	}

	missingCourse := m.db.
		Where("course_id NOT IN (?)", m.db.Model(&model.Course{}).Select("id")).
		Delete(&model.CourseAssignment{})
	if missingCourse.Error != nil {
		m.logJobError(jobName, fmt.Errorf("sweep assignments without course: %w", missingCourse.Error))
		return
	}

	removed := missingProfessor.RowsAffected + missingCourse.RowsAffected
	m.logJobComplete(jobName, fmt.Sprintf("Removed %d orphaned assignment(s)", removed))
}

// TrimCronJobLogs deletes job log rows older than 90 days.
func (m *CronManager) TrimCronJobLogs() {
	jobName := "trim_cron_logs"

	cutoff := time.Now().AddDate(0, 0, -90)
	result := m.db.Where("started_at < ?", cutoff).Delete(&model.CronJobLog{})
	if result.Error != nil {
		m.logJobError(jobName, fmt.Errorf("trim cron logs: %w", result.Error))
		return
	}

	m.logJobComplete(jobName, fmt.Sprintf("Removed %d old log row(s)", result.RowsAffected))
}
