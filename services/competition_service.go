package services

import (
	"errors"
	"log"
	"math/rand"
	"time"

	"jobtorget-backend/config"
	"jobtorget-backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrNoPartner           = errors.New("no available partner this week")
	ErrNoSharedExercise    = errors.New("no fair shared exercise")
	ErrCompetitionNotFound = errors.New("competition not found")
	ErrBonusAlreadyAwarded = errors.New("bonus already awarded")
	ErrGoalNotMet          = errors.New("competition goal not met")
)

// FairnessCeiling caps each participant's summed PI for a shared exercise.
// Exercises where either user is already above it are never selected.
const FairnessCeiling = 100.0

// CompetitionService pairs users into weekly competitions and awards the
// completion bonus. All uniqueness and idempotence invariants are enforced
// in the database, never in memory.
type CompetitionService struct {
	DB      *gorm.DB
	Goal    float64
	BonusPI float64

	// pick returns a random index in [0,n). Swapped out in tests.
	pick func(n int) int
	now  func() time.Time
}

func NewCompetitionService(db *gorm.DB, cfg *config.Config) *CompetitionService {
	return &CompetitionService{
		DB:      db,
		Goal:    cfg.CompetitionGoal,
		BonusPI: cfg.CompetitionBonusPI,
		pick:    rand.Intn,
		now:     time.Now,
	}
}

// WeekKey returns the ISO date of the Monday starting t's week, at UTC
// midnight. Weeks run Monday through Sunday (ISO-8601).
func WeekKey(t time.Time) string {
	t = t.UTC()
	offset := (int(t.Weekday()) + 6) % 7 // Monday=0 ... Sunday=6
	return t.AddDate(0, 0, -offset).Format("2006-01-02")
}

// GetOrCreateWeeklyCompetition returns the requesting user's competition for
// the current week, creating one if none exists. Repeated calls within the
// same week return the same row. A race with a concurrent pairing surfaces
// as a unique violation on competition_members, in which case we re-read.
func (s *CompetitionService) GetOrCreateWeeklyCompetition(userID string) (*models.WeeklyCompetition, error) {
	week := WeekKey(s.now())

	for attempt := 0; attempt < 3; attempt++ {
		var existing models.WeeklyCompetition
		err := s.DB.
			Where("week = ? AND (user_a = ? OR user_b = ?)", week, userID, userID).
			First(&existing).Error
		if err == nil {
			return &existing, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		partner, err := s.pickPartner(week, userID)
		if err != nil {
			return nil, err
		}
		exercise, err := s.pickSharedExercise(userID, partner)
		if err != nil {
			return nil, err
		}

		comp, err := s.createCompetition(week, userID, partner, exercise)
		if err == nil {
			return comp, nil
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the race: either we or the chosen partner got paired by a
			// concurrent request. Loop back: the re-read at the top returns
			// our row if it exists, otherwise we pick a new partner.
			continue
		}
		return nil, err
	}
	return nil, ErrNoPartner
}

// pickPartner returns a random user who has real PI results and is not yet
// paired this week.
func (s *CompetitionService) pickPartner(week, userID string) (string, error) {
	var busy []string
	if err := s.DB.Model(&models.CompetitionMember{}).
		Where("week = ?", week).
		Distinct().
		Pluck("user_id", &busy).Error; err != nil {
		return "", err
	}
	taken := make(map[string]bool, len(busy))
	for _, id := range busy {
		taken[id] = true
	}

	var candidates []string
	if err := s.DB.Model(&models.PerformanceRecord{}).
		Where("user_id <> ? AND profile <> ? AND exercise <> ?",
			userID, models.BonusProfile, models.BonusExercise).
		Distinct().
		Order("user_id").
		Pluck("user_id", &candidates).Error; err != nil {
		return "", err
	}

	available := candidates[:0]
	for _, id := range candidates {
		if !taken[id] {
			available = append(available, id)
		}
	}
	if len(available) == 0 {
		return "", ErrNoPartner
	}
	return available[s.pick(len(available))], nil
}

// pickSharedExercise returns a random exercise both users have nonzero,
// non-bonus results for, with each user's summed PI under the fairness
// ceiling. The per-user sums are grouped before the join so neither side
// inflates the other.
func (s *CompetitionService) pickSharedExercise(userID, partnerID string) (string, error) {
	var shared []string
	err := s.DB.Raw(`
		SELECT a.exercise
		FROM (
			SELECT exercise, SUM(pi) AS total
			FROM performance_records
			WHERE user_id = ? AND pi > 0 AND profile <> ? AND exercise <> ?
			GROUP BY exercise
		) a
		JOIN (
			SELECT exercise, SUM(pi) AS total
			FROM performance_records
			WHERE user_id = ? AND pi > 0 AND profile <> ? AND exercise <> ?
			GROUP BY exercise
		) b ON a.exercise = b.exercise
		WHERE a.total <= ? AND b.total <= ?
		ORDER BY a.exercise`,
		userID, models.BonusProfile, models.BonusExercise,
		partnerID, models.BonusProfile, models.BonusExercise,
		FairnessCeiling, FairnessCeiling,
	).Scan(&shared).Error
	if err != nil {
		return "", err
	}
	if len(shared) == 0 {
		return "", ErrNoSharedExercise
	}
	return shared[s.pick(len(shared))], nil
}

// createCompetition inserts the competition, both member rows and both
// rivalry increments in one transaction. The unique index on
// competition_members(week, user_id) rejects double pairings.
func (s *CompetitionService) createCompetition(week, userID, partnerID, exercise string) (*models.WeeklyCompetition, error) {
	now := s.now()
	deadline := now.Add(7 * 24 * time.Hour)

	comp := &models.WeeklyCompetition{
		ID:          uuid.NewString(),
		WeekKey:     week,
		Exercise:    exercise,
		UserA:       userID,
		UserB:       partnerID,
		Deadline:    deadline,
		LockedUntil: deadline,
		Goal:        s.Goal,
		BonusPI:     s.BonusPI,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(comp).Error; err != nil {
			return err
		}

		members := []models.CompetitionMember{
			{WeekKey: week, UserID: userID, CompetitionID: comp.ID},
			{WeekKey: week, UserID: partnerID, CompetitionID: comp.ID},
		}
		if err := tx.Create(&members).Error; err != nil {
			return err
		}

		for _, pair := range [][2]string{{userID, partnerID}, {partnerID, userID}} {
			err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "user_id"}, {Name: "rival_id"}},
				DoUpdates: clause.Assignments(map[string]interface{}{
					"matches":    gorm.Expr("rivalry_records.matches + 1"),
					"last_match": now,
				}),
			}).Create(&models.RivalryRecord{
				UserID:    pair[0],
				RivalID:   pair[1],
				Matches:   1,
				LastMatch: now,
			}).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("🤝 Weekly competition created: %s vs %s on %q (week %s)", userID, partnerID, exercise, week)
	return comp, nil
}

// AwardBonus credits both participants once the competition goal is met.
// The conditional flip of bonus_awarded is the idempotence gate: a replay
// affects zero rows and nothing else runs. Everything happens in a single
// transaction, so a goal miss or any write failure rolls the flip back too.
func (s *CompetitionService) AwardBonus(id string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.WeeklyCompetition{}).
			Where("id = ? AND bonus_awarded = ?", id, false).
			Update("bonus_awarded", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&models.WeeklyCompetition{}).Where("id = ?", id).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return ErrCompetitionNotFound
			}
			return ErrBonusAlreadyAwarded
		}

		var comp models.WeeklyCompetition
		if err := tx.First(&comp, "id = ?", id).Error; err != nil {
			return err
		}

		totalA, err := sumPerformanceIndex(tx, comp.UserA, comp.Exercise)
		if err != nil {
			return err
		}
		totalB, err := sumPerformanceIndex(tx, comp.UserB, comp.Exercise)
		if err != nil {
			return err
		}
		if totalA+totalB < comp.Goal {
			return ErrGoalNotMet // rolls back the bonus_awarded flip
		}

		var winner string
		switch {
		case totalA > totalB:
			winner = comp.UserA
		case totalB > totalA:
			winner = comp.UserB
		}

		now := s.now()
		bonus := []models.PerformanceRecord{
			{UserID: comp.UserA, Exercise: models.BonusExercise, Profile: models.BonusProfile,
				PerformanceIndex: comp.BonusPI, Category: models.BonusCategory, CreatedAt: now},
			{UserID: comp.UserB, Exercise: models.BonusExercise, Profile: models.BonusProfile,
				PerformanceIndex: comp.BonusPI, Category: models.BonusCategory, CreatedAt: now},
		}
		if err := tx.Create(&bonus).Error; err != nil {
			return err
		}

		for _, pair := range [][2]string{{comp.UserA, comp.UserB}, {comp.UserB, comp.UserA}} {
			column := "draws"
			switch winner {
			case pair[0]:
				column = "wins"
			case pair[1]:
				column = "losses"
			}
			err := tx.Model(&models.RivalryRecord{}).
				Where("user_id = ? AND rival_id = ?", pair[0], pair[1]).
				UpdateColumn(column, gorm.Expr(column+" + 1")).Error
			if err != nil {
				return err
			}
		}

		log.Printf("🏅 Bonus awarded for competition %s (winner: %s)", id, winnerLabel(winner))
		return nil
	})
}

func winnerLabel(winner string) string {
	if winner == "" {
		return "draw"
	}
	return winner
}

// --- HTTP handlers ---

func (s *CompetitionService) GetWeeklyCompetition(c *fiber.Ctx) error {
	userID := c.Params("userId")
	if userID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "userId is required"})
	}

	comp, err := s.GetOrCreateWeeklyCompetition(userID)
	switch {
	case err == nil:
		return c.JSON(comp)
	case errors.Is(err, ErrNoPartner), errors.Is(err, ErrNoSharedExercise):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": err.Error()})
	default:
		log.Printf("❌ Weekly competition for %s failed: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not fetch competition"})
	}
}

func (s *CompetitionService) PostAwardBonus(c *fiber.Ctx) error {
	id := c.Params("id")

	err := s.AwardBonus(id)
	switch {
	case err == nil:
		return c.JSON(fiber.Map{"success": true})
	case errors.Is(err, ErrCompetitionNotFound),
		errors.Is(err, ErrBonusAlreadyAwarded),
		errors.Is(err, ErrGoalNotMet):
		return c.SendStatus(fiber.StatusBadRequest)
	default:
		log.Printf("❌ Award bonus for competition %s failed: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not award bonus"})
	}
}

func (s *CompetitionService) GetRivals(c *fiber.Ctx) error {
	userID := c.Params("userId")

	var rivals []models.RivalryRecord
	if err := s.DB.
		Where("user_id = ?", userID).
		Order("matches DESC, last_match DESC").
		Find(&rivals).Error; err != nil {
		log.Printf("❌ Fetching rivals for %s failed: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not fetch rivals"})
	}
	return c.JSON(rivals)
}
