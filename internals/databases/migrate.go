// file: internals/databases/migrate.go
package database

import (
	"gorm.io/gorm"

	adminModel "ekonomvote_backend/internals/features/admins/model"
	auditModel "ekonomvote_backend/internals/features/audit/model"
	catalogModel "ekonomvote_backend/internals/features/awards/catalog/model"
	eventModel "ekonomvote_backend/internals/features/awards/events/model"
	awardVoteModel "ekonomvote_backend/internals/features/awards/votes/model"
	candModel "ekonomvote_backend/internals/features/election/candidates/model"
	votingModel "ekonomvote_backend/internals/features/election/votings/model"
	voteModel "ekonomvote_backend/internals/features/election/votes/model"
)

// Migrate creates/updates the schema for every feature model.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&votingModel.VotingModel{},
		&candModel.CandidateModel{},
		&candModel.CandidateRegistrationModel{},
		&candModel.ElectoralProgramModel{},
		&voteModel.VoteModel{},
		&catalogModel.AwardModel{},
		&catalogModel.TeacherModel{},
		&eventModel.VotingEventModel{},
		&eventModel.VotingRoundModel{},
		&eventModel.CandidatureModel{},
		&awardVoteModel.AwardVoteModel{},
		&auditModel.ActionLogModel{},
		&adminModel.AdminModel{},
	)
}

// EnforceImmutability installs BEFORE UPDATE triggers on the append-only
// tables. Vote and audit immutability is safety-critical and must hold even
// for direct SQL access, not just through the GORM hooks.
func EnforceImmutability(db *gorm.DB) error {
	if db.Dialector.Name() != "postgres" {
		return nil
	}
	stmts := []string{
		`CREATE OR REPLACE FUNCTION reject_row_update() RETURNS trigger AS $$
		 BEGIN
		   RAISE EXCEPTION '% rows are immutable', TG_TABLE_NAME;
		 END;
		 $$ LANGUAGE plpgsql`,
		`DROP TRIGGER IF EXISTS votes_immutable ON votes`,
		`CREATE TRIGGER votes_immutable BEFORE UPDATE ON votes
		 FOR EACH ROW EXECUTE FUNCTION reject_row_update()`,
		`DROP TRIGGER IF EXISTS award_votes_immutable ON award_votes`,
		`CREATE TRIGGER award_votes_immutable BEFORE UPDATE ON award_votes
		 FOR EACH ROW EXECUTE FUNCTION reject_row_update()`,
		`DROP TRIGGER IF EXISTS action_logs_immutable ON action_logs`,
		`CREATE TRIGGER action_logs_immutable BEFORE UPDATE ON action_logs
		 FOR EACH ROW EXECUTE FUNCTION reject_row_update()`,
	}
	for _, stmt := range stmts {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}
