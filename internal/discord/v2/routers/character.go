package routers

import (
	"strconv"

	"github.com/bwmarrin/discordgo"

	"github.com/KirkDiggler/othership-bot/internal/discord/v2/core"
	"github.com/KirkDiggler/othership-bot/internal/discord/v2/handlers"
	"github.com/KirkDiggler/othership-bot/internal/discord/v2/middleware"
	"github.com/KirkDiggler/othership-bot/internal/domain/character"
	"github.com/KirkDiggler/othership-bot/internal/domain/rulebook/othership"
	apperr "github.com/KirkDiggler/othership-bot/internal/errors"
	"github.com/KirkDiggler/othership-bot/internal/services"
	charsvc "github.com/KirkDiggler/othership-bot/internal/services/character"
	gamesvc "github.com/KirkDiggler/othership-bot/internal/services/game"
)

// CharacterRouter handles /character and the creation wizard components
type CharacterRouter struct {
	router  *core.Router
	service charsvc.Service
	games   gamesvc.Service
	wizard  *handlers.WizardRenderer
}

// NewCharacterRouter creates and registers the character router
func NewCharacterRouter(pipeline *core.Pipeline, provider *services.Provider) *CharacterRouter {
	router := core.NewRouter("character", pipeline)

	cr := &CharacterRouter{
		router:  router,
		service: provider.CharacterService,
		games:   provider.GameService,
		wizard:  handlers.NewWizardRenderer(provider.Rulebook, router.GetCustomIDBuilder()),
	}

	router.Use(middleware.GuildOnlyMiddleware())
	router.Define(characterCommand())
	cr.registerRoutes()
	router.Register()
	return cr
}

func characterCommand() *discordgo.ApplicationCommand {
	var choices []*discordgo.ApplicationCommandOptionChoice
	for _, stat := range othership.AllStats() {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{Name: stat.Display(), Value: string(stat)})
	}
	for _, save := range othership.AllSaves() {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{Name: save.Display() + " save", Value: string(save)})
	}

	return &discordgo.ApplicationCommand{
		Description: "Build and play your crew member",
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionSubCommand, Name: "create", Description: "Start or resume your character for the current game"},
			{Type: discordgo.ApplicationCommandOptionSubCommand, Name: "show", Description: "Show your character sheet"},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "check",
				Description: "Roll a d100 under a stat or save",
				Options: []*discordgo.ApplicationCommandOption{{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "attribute",
					Description: "Stat or save to test",
					Required:    true,
					Choices:     choices,
				}},
			},
		},
	}
}

func (r *CharacterRouter) registerRoutes() {
	// Slash commands
	r.router.SubcommandFunc("create", r.handleCreate)
	r.router.SubcommandFunc("show", r.handleShow)
	r.router.SubcommandFunc("check", r.handleCheck)

	// Rolling
	r.router.ComponentFunc("roll_stat", r.handleRollStat)
	r.router.ComponentFunc("roll_save", r.handleRollSave)
	r.router.ComponentFunc("roll_remaining", r.handleRollRemaining)

	// Class and skills
	r.router.ComponentFunc("class", r.handleClass)
	r.router.ComponentFunc("stat_choice", r.handleStatChoice)
	r.router.ComponentFunc("master", r.handleMaster)
	r.router.ComponentFunc("bonus_choice", r.handleBonusChoice)
	r.router.ComponentFunc("skill", r.handleSkill)

	// Details and navigation
	r.router.ComponentFunc("details", r.handleDetails)
	r.router.ModalFunc("details", r.handleDetailsSubmit)
	r.router.ComponentFunc("finalize", r.handleFinalize)
	r.router.ComponentFunc("back", r.handlePage)
	r.router.ComponentFunc("next", r.handlePage)
}

// ref identifies the character a component acts on
func ref(ctx *core.InteractionContext) (charsvc.Ref, error) {
	id := ctx.CustomID()
	if id == nil || id.Target == "" {
		return charsvc.Ref{}, core.NewValidationError("That button is no longer valid.")
	}
	return charsvc.Ref{CharacterID: id.Target, UserID: ctx.UserID}, nil
}

// owned loads the character a component acts on, rejecting anyone but the
// owner
func (r *CharacterRouter) owned(ctx *core.InteractionContext) (*character.Character, error) {
	rf, err := ref(ctx)
	if err != nil {
		return nil, err
	}
	char, err := r.service.GetCharacter(ctx.Context, rf.CharacterID)
	if err != nil {
		return nil, err
	}
	if char.OwnerID != ctx.UserID {
		return nil, core.NewForbiddenError("You can only edit your own character.")
	}
	return char, nil
}

func (r *CharacterRouter) render(char *character.Character, page handlers.Page) *core.Response {
	return r.wizard.Render(r.service.Sheet(char), page)
}

// selected is the single value picked in a select menu
func selected(ctx *core.InteractionContext) (string, error) {
	values := ctx.Values()
	if len(values) == 0 || values[0] == "" {
		return "", core.NewValidationError("Please make a selection.")
	}
	return values[0], nil
}

func (r *CharacterRouter) handleCreate(ctx *core.InteractionContext) (*core.HandlerResult, error) {
	g, err := r.games.PlayerGame(ctx.Context, ctx.GuildID, ctx.UserID)
	if err != nil {
		return nil, err
	}

	char, err := r.service.CreateDraft(ctx.Context, &charsvc.CreateDraftInput{
		OwnerID: ctx.UserID,
		GuildID: ctx.GuildID,
		GameID:  g.ID,
	})
	if err != nil {
		return nil, err
	}

	page := handlers.PageForStep(r.service.Step(char))
	return core.Respond(r.render(char, page).AsEphemeral()), nil
}

// latest returns the newest character, or the newest ready one
func latest(chars []*character.Character, readyOnly bool) *character.Character {
	for i := len(chars) - 1; i >= 0; i-- {
		if !readyOnly || chars[i].IsReady() {
			return chars[i]
		}
	}
	return nil
}

func (r *CharacterRouter) handleShow(ctx *core.InteractionContext) (*core.HandlerResult, error) {
	chars, err := r.service.ListByOwner(ctx.Context, ctx.GuildID, ctx.UserID)
	if err != nil {
		return nil, err
	}
	char := latest(chars, false)
	if char == nil {
		return nil, apperr.NotFound("you have no characters yet, use /character create once a game starts")
	}
	return core.Respond(core.NewEmbedResponse(handlers.SheetEmbed(r.service.Sheet(char))).AsEphemeral()), nil
}

func (r *CharacterRouter) handleCheck(ctx *core.InteractionContext) (*core.HandlerResult, error) {
	chars, err := r.service.ListByOwner(ctx.Context, ctx.GuildID, ctx.UserID)
	if err != nil {
		return nil, err
	}
	char := latest(chars, true)
	if char == nil {
		return nil, apperr.FailedPrecondition("finish creating your character before making checks")
	}

	out, err := r.service.Check(ctx.Context, charsvc.Ref{CharacterID: char.ID, UserID: ctx.UserID}, ctx.GetStringParam("attribute"))
	if err != nil {
		return nil, err
	}
	return core.Respond(core.NewEmbedResponse(handlers.CheckEmbed(out))), nil
}

func (r *CharacterRouter) handleRollStat(ctx *core.InteractionContext) (*core.HandlerResult, error) {
	rf, err := ref(ctx)
	if err != nil {
		return nil, err
	}
	stat, ok := othership.ParseStat(ctx.CustomID().Arg(0))
	if !ok {
		return nil, core.NewValidationError("Unknown stat.")
	}

	out, err := r.service.RollStat(ctx.Context, rf, stat)
	if err != nil {
		return nil, err
	}
	resp := r.render(out.Character, handlers.PageStats).AsUpdate()
	resp.Content = handlers.RollContent(out)
	return core.Respond(resp), nil
}

func (r *CharacterRouter) handleRollSave(ctx *core.InteractionContext) (*core.HandlerResult, error) {
	rf, err := ref(ctx)
	if err != nil {
		return nil, err
	}
	save, ok := othership.ParseSave(ctx.CustomID().Arg(0))
	if !ok {
		return nil, core.NewValidationError("Unknown save.")
	}

	out, err := r.service.RollSave(ctx.Context, rf, save)
	if err != nil {
		return nil, err
	}
	resp := r.render(out.Character, handlers.PageStats).AsUpdate()
	resp.Content = handlers.RollContent(out)
	return core.Respond(resp), nil
}

func (r *CharacterRouter) handleRollRemaining(ctx *core.InteractionContext) (*core.HandlerResult, error) {
	rf, err := ref(ctx)
	if err != nil {
		return nil, err
	}

	out, err := r.service.RollRemaining(ctx.Context, rf)
	if err != nil {
		return nil, err
	}
	resp := r.render(out.Character, handlers.PageStats).AsUpdate()
	resp.Content = handlers.RollContent(out.Rolls...)
	return core.Respond(resp), nil
}

func (r *CharacterRouter) handleClass(ctx *core.InteractionContext) (*core.HandlerResult, error) {
	rf, err := ref(ctx)
	if err != nil {
		return nil, err
	}
	value, err := selected(ctx)
	if err != nil {
		return nil, err
	}

	char, err := r.service.SelectClass(ctx.Context, rf, othership.ClassKey(value))
	if err != nil {
		return nil, err
	}
	return core.Respond(r.render(char, handlers.PageClass).AsUpdate()), nil
}

func (r *CharacterRouter) handleStatChoice(ctx *core.InteractionContext) (*core.HandlerResult, error) {
	rf, err := ref(ctx)
	if err != nil {
		return nil, err
	}
	value, err := selected(ctx)
	if err != nil {
		return nil, err
	}

	char, err := r.service.SelectStatChoice(ctx.Context, rf, othership.Stat(value))
	if err != nil {
		return nil, err
	}
	return core.Respond(r.render(char, handlers.PageClass).AsUpdate()), nil
}

func (r *CharacterRouter) handleMaster(ctx *core.InteractionContext) (*core.HandlerResult, error) {
	rf, err := ref(ctx)
	if err != nil {
		return nil, err
	}
	value, err := selected(ctx)
	if err != nil {
		return nil, err
	}

	char, err := r.service.SelectMasterSkill(ctx.Context, rf, value)
	if err != nil {
		return nil, err
	}
	return core.Respond(r.render(char, handlers.PageClass).AsUpdate()), nil
}

func (r *CharacterRouter) handleBonusChoice(ctx *core.InteractionContext) (*core.HandlerResult, error) {
	rf, err := ref(ctx)
	if err != nil {
		return nil, err
	}
	idx, err := strconv.Atoi(ctx.CustomID().Arg(0))
	if err != nil {
		return nil, core.NewValidationError("Unknown bonus option.")
	}

	char, err := r.service.SelectBonusChoice(ctx.Context, rf, idx)
	if err != nil {
		return nil, err
	}
	return core.Respond(r.render(char, handlers.PageSkills).AsUpdate()), nil
}

func (r *CharacterRouter) handleSkill(ctx *core.InteractionContext) (*core.HandlerResult, error) {
	rf, err := ref(ctx)
	if err != nil {
		return nil, err
	}
	value, err := selected(ctx)
	if err != nil {
		return nil, err
	}

	char, err := r.service.ToggleSkill(ctx.Context, rf, value)
	if err != nil {
		return nil, err
	}
	return core.Respond(r.render(char, handlers.PageSkills).AsUpdate()), nil
}

func (r *CharacterRouter) handleDetails(ctx *core.InteractionContext) (*core.HandlerResult, error) {
	char, err := r.owned(ctx)
	if err != nil {
		return nil, err
	}
	return core.Respond(core.NewModalResponse(r.wizard.DetailsModal(char))), nil
}

func (r *CharacterRouter) handleDetailsSubmit(ctx *core.InteractionContext) (*core.HandlerResult, error) {
	rf, err := ref(ctx)
	if err != nil {
		return nil, err
	}

	char, err := r.service.SetDetails(ctx.Context, rf,
		ctx.GetStringParam(handlers.InputName),
		ctx.GetStringParam(handlers.InputAvatar))
	if err != nil {
		return nil, err
	}
	return core.Respond(r.render(char, handlers.PageDetails).AsUpdate()), nil
}

func (r *CharacterRouter) handleFinalize(ctx *core.InteractionContext) (*core.HandlerResult, error) {
	rf, err := ref(ctx)
	if err != nil {
		return nil, err
	}

	char, err := r.service.Finalize(ctx.Context, rf)
	if err != nil {
		return nil, err
	}
	resp := r.render(char, handlers.PageSheet).AsUpdate()
	resp.Content = "**" + char.Name + "** is ready for duty."
	return core.Respond(resp), nil
}

func (r *CharacterRouter) handlePage(ctx *core.InteractionContext) (*core.HandlerResult, error) {
	char, err := r.owned(ctx)
	if err != nil {
		return nil, err
	}
	page := handlers.Page(ctx.CustomID().Arg(0))
	return core.Respond(r.render(char, page).AsUpdate()), nil
}
