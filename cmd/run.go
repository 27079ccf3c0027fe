package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/serenity-hq/screener/internal/candidate"
	"github.com/serenity-hq/screener/internal/catalog"
	"github.com/serenity-hq/screener/internal/interview"
	"github.com/serenity-hq/screener/internal/logger"
	"github.com/serenity-hq/screener/internal/matching"
	"github.com/serenity-hq/screener/internal/scoring"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PromptEmployerReport    = "Show employer report"
	PromptCandidateFeedback = "Show candidate feedback"
	PromptRankPrograms      = "Rank against programs"
	PromptDumpSession       = "Dump session to file"
	PromptExit              = "Exit"
)

var errExit = errors.New("exit requested")

var reportPrompt = promptui.Select{
	Label: "Interview complete. What next?",
	Items: []string{PromptEmployerReport, PromptCandidateFeedback, PromptRankPrograms, PromptDumpSession, PromptExit},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run an interactive screening interview in the terminal",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("profile", "p", "", "path to a candidate profile JSON file")
	runCmd.Flags().StringP("programs", "g", "", "path to a programs JSON file for ranking")

	viper.BindPFlag("profile", runCmd.Flags().Lookup("profile"))
	viper.BindPFlag("programs", runCmd.Flags().Lookup("programs"))
}

// run drives a full interview loop in the terminal: ask, answer, follow up,
// evaluate, then report.
func run(cmd *cobra.Command) {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the screener", zap.String("version", resolveVersion()))

	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	profile, err := loadProfile(viper.GetString("profile"))
	if err != nil {
		logger.Fatal("loading candidate profile", zap.Error(err))
	}
	if profile == nil {
		logger.Info("no profile given, interviewing without CV context")
	}

	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	ctrl := interview.NewController(catalog.Default(logger), config.interviewConfig(), rng, logger)

	evaluator, err := scoring.NewEvaluator(config.scoringConfig(), logger)
	if err != nil {
		logger.Fatal("building the evaluator", zap.Error(err))
	}

	fmt.Println(catalog.WarmupSpeech)
	fmt.Println()

	transcript, err := interviewLoop(ctrl, profile)
	if err != nil {
		logger.Fatal("interview aborted", zap.Error(err))
	}

	sess := pairTurns(transcript)
	if len(sess.Turns) == 0 {
		logger.Info("exiting", zap.String("reason", "no answered questions to score"))
		return
	}

	eval := evaluator.Evaluate(sess)
	offers := scoring.SynthesizeOffers(evaluator.Config(), eval.Scores, eval.CVAlignment, eval.OverallScore, eval.RiskFlags)

	logger.Info("interview scored",
		zap.Int("overall", eval.OverallScore),
		zap.String("recommendation", string(eval.Recommendation)),
		zap.Int("risk_flags", len(eval.RiskFlags)),
		zap.Int("coaching_offers", len(offers)),
	)

	for {
		_, action, err := reportPrompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}
		if err := handleAction(action, profile, eval, offers, transcript, logger); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

// interviewLoop asks questions until the controller signals completion. The
// elapsed clock is wall time so the hard stop behaves as in production.
func interviewLoop(ctrl *interview.Controller, profile *candidate.Profile) ([]interview.TranscriptItem, error) {
	var (
		transcript []interview.TranscriptItem
		state      *interview.State
		started    = time.Now()
	)

	for {
		q, next := ctrl.Decide(profile, transcript, state)
		if q == nil {
			return transcript, nil
		}
		transcript = append(transcript, interview.TranscriptItem{
			Role:       interview.RoleSystem,
			Content:    q.Text,
			QuestionID: q.ID,
		})

		fmt.Println()
		fmt.Println(q.Text)

		answerPrompt := promptui.Prompt{Label: "Your answer"}
		answer, err := answerPrompt.Run()
		if err != nil {
			return transcript, err
		}

		transcript = append(transcript, interview.TranscriptItem{
			Role:       interview.RoleUser,
			Content:    answer,
			QuestionID: q.ID,
		})

		next.ElapsedMinutes = time.Since(started).Minutes()
		state = &next
	}
}

func handleAction(action string, profile *candidate.Profile, eval *scoring.Evaluation, offers []scoring.CoachingOffer, transcript []interview.TranscriptItem, logger *zap.Logger) error {
	switch action {
	case PromptEmployerReport:
		pretty, _ := json.MarshalIndent(map[string]any{
			"scores":           eval.Scores,
			"overall_score":    eval.OverallScore,
			"risk_flags":       eval.RiskFlags,
			"recommendation":   eval.Recommendation,
			"employer_summary": eval.EmployerSummary,
		}, "", "  ")
		fmt.Println(string(pretty))
		return nil
	case PromptCandidateFeedback:
		pretty, _ := json.MarshalIndent(map[string]any{
			"candidate_feedback": eval.CandidateFeedback,
			"coaching_offers":    offers,
		}, "", "  ")
		fmt.Println(string(pretty))
		return nil
	case PromptRankPrograms:
		return rankReport(profile, eval, logger)
	case PromptDumpSession:
		filename, err := dumpToTmpFile(map[string]any{
			"transcript": transcript,
			"evaluation": eval,
		})
		if err != nil {
			return fmt.Errorf("dump session to file: %w", err)
		}
		logger.Info("dumping session to file", zap.String("filename", filename))
		return nil
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func rankReport(profile *candidate.Profile, eval *scoring.Evaluation, logger *zap.Logger) error {
	programs, err := loadPrograms(viper.GetString("programs"))
	if err != nil {
		return err
	}
	if len(programs) == 0 {
		logger.Info("no programs file given, ranking against one sample program per type")
		programs = samplePrograms()
	}

	config, err := getConfig()
	if err != nil {
		return err
	}

	matcher := matching.New(config.matchingConfig(), logger)
	apps := matcher.Rank(profile, eval, programs)
	matching.SortByScore(apps)

	byID := make(map[string]*matching.Program, len(programs))
	for _, p := range programs {
		byID[p.ID] = p
	}
	for _, app := range apps {
		fmt.Printf("%2d [%s] %s\n", app.MatchScore, app.MatchTier, byID[app.ProgramID].Title)
		for _, why := range app.Breakdown.WhyThisMatch {
			fmt.Printf("     + %s\n", why)
		}
		for _, risk := range app.Breakdown.Risks {
			fmt.Printf("     - %s\n", risk)
		}
	}
	return nil
}

func loadProfile(path string) (*candidate.Profile, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var profile candidate.Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("parsing profile %s: %w", path, err)
	}
	return &profile, nil
}

func loadPrograms(path string) ([]*matching.Program, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var programs []*matching.Program
	if err := json.Unmarshal(data, &programs); err != nil {
		return nil, fmt.Errorf("parsing programs %s: %w", path, err)
	}
	return programs, nil
}

// samplePrograms builds one live program per type from the static
// definitions, used when no programs file is supplied.
func samplePrograms() []*matching.Program {
	types := []matching.ProgramType{
		matching.InboundSupport,
		matching.OutboundSales,
		matching.TechSupport,
		matching.BackOffice,
	}
	programs := make([]*matching.Program, 0, len(types))
	for _, t := range types {
		def := matching.Definitions[t]
		programs = append(programs, &matching.Program{
			ID:     strings.ToLower(string(t)),
			Title:  def.Label,
			Type:   t,
			Status: matching.ProgramLive,
		})
	}
	return programs
}

// pairTurns converts the raw transcript into scored question/answer pairs.
func pairTurns(transcript []interview.TranscriptItem) scoring.Session {
	var turns []scoring.Turn
	var pending *interview.TranscriptItem
	for i := range transcript {
		item := &transcript[i]
		switch item.Role {
		case interview.RoleSystem:
			pending = item
		case interview.RoleUser:
			if pending == nil {
				continue
			}
			turns = append(turns, scoring.Turn{
				Question: interview.Question{ID: pending.QuestionID, Text: pending.Content},
				Answer:   item.Content,
			})
			pending = nil
		}
	}
	return scoring.Session{Turns: turns}
}

func dumpToTmpFile(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	f, err := os.CreateTemp("", app+"-session-*.json")
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := f.Write(data); err != nil {
		return "", err
	}
	return f.Name(), nil
}
