package botapi_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"mafia/internal/botapi"
	"mafia/internal/engine"
	"mafia/internal/engine/roles"
	"mafia/internal/lobby"
)

type eventsBody struct {
	Events  []engine.Event `json:"events"`
	Dropped int            `json:"dropped"`
}

var _ = Describe("Bot API", func() {
	var (
		mgr    *lobby.Manager
		client *resty.Client
		gameID string
		bots   = []string{"Ada", "Bit", "Cog"}
	)

	botURL := func(name, path string) string {
		return fmt.Sprintf("/games/%s/bots/%s/%s", gameID, name, path)
	}

	view := func(name string) engine.PlayerViewData {
		var v engine.PlayerViewData
		resp, err := client.R().SetResult(&v).Get(botURL(name, "view"))
		Expect(err).ToNot(HaveOccurred())
		Expect(resp.StatusCode()).To(Equal(http.StatusOK), "view for %s", name)
		return v
	}

	seatAndStart := func() {
		for _, name := range bots {
			resp, err := client.R().SetBody(map[string]string{"name": name}).Post(fmt.Sprintf("/games/%s/bots", gameID))
			Expect(err).ToNot(HaveOccurred())
			Expect(resp.StatusCode()).To(Equal(http.StatusCreated), "seating %s", name)
		}
		resp, err := client.R().Post(fmt.Sprintf("/games/%s/start", gameID))
		Expect(err).ToNot(HaveOccurred())
		Expect(resp.StatusCode()).To(Equal(http.StatusOK), "starting the game: %s", resp.String())
	}

	BeforeEach(func() {
		cfg := roles.DefaultConfig()
		cfg.RoleList = []string{"Name::" + roles.Godfather, "Name::" + roles.Sheriff, "Name::" + roles.Doctor}
		mgr = lobby.NewManager(cfg, roles.NewCatalog(), nil)
		srv := httptest.NewServer(botapi.NewHandler(mgr, nil).Router())
		DeferCleanup(func() {
			srv.Close()
			mgr.Close()
		})
		client = resty.New().SetBaseURL(srv.URL)
		gameID = mgr.Create()
	})

	It("seats bots, starts the game and deals roles", func() {
		seatAndStart()

		dealt := map[string]bool{}
		for _, name := range bots {
			v := view(name)
			Expect(v.Name).To(Equal(name))
			Expect(v.Role).ToNot(BeEmpty(), "%s should have a role", name)
			dealt[v.Role] = true
		}
		Expect(dealt).To(HaveLen(3))

		var body eventsBody
		Eventually(func() []engine.Event {
			resp, err := client.R().SetResult(&body).Get(botURL("Ada", "events"))
			Expect(err).ToNot(HaveOccurred())
			Expect(resp.StatusCode()).To(Equal(http.StatusOK))
			return body.Events
		}, 2*time.Second, 20*time.Millisecond).Should(ContainElement(HaveField("Title", "Role list")))
	})

	It("delivers only the bot's own private messages", func() {
		seatAndStart()

		seen := map[string]bool{}
		Eventually(func() bool {
			var body eventsBody
			_, err := client.R().SetResult(&body).Get(botURL("Bit", "events"))
			Expect(err).ToNot(HaveOccurred())
			for _, e := range body.Events {
				if e.Private() {
					Expect(e.To).To(Equal("Bit"))
					if strings.HasPrefix(e.Body, "You are the") {
						seen["role"] = true
					}
				}
			}
			return seen["role"]
		}, 2*time.Second, 20*time.Millisecond).Should(BeTrue())
	})

	It("relays input and reports engine errors", func() {
		seatAndStart()
		Eventually(func() string { return view("Ada").Phase }, 2*time.Second, 20*time.Millisecond).Should(Equal("Daybreak"))

		resp, err := client.R().SetBody(map[string]any{"targets": []string{"Bit"}}).Post(botURL("Ada", "targets"))
		Expect(err).ToNot(HaveOccurred())
		Expect(resp.StatusCode()).To(Equal(http.StatusNoContent))
		Expect(view("Ada").Targets).To(Equal([]string{"Bit"}))

		resp, err = client.R().SetBody(map[string]string{"candidate": "Bit"}).Post(botURL("Ada", "trial-vote"))
		Expect(err).ToNot(HaveOccurred())
		Expect(resp.StatusCode()).To(Equal(http.StatusConflict), "no trial before daylight")

		resp, err = client.R().SetBody(map[string]string{"verdict": "maybe"}).Post(botURL("Ada", "lynch-vote"))
		Expect(err).ToNot(HaveOccurred())
		Expect(resp.StatusCode()).To(Equal(http.StatusBadRequest))

		resp, err = client.R().SetBody(map[string]string{"text": "beep"}).Post(botURL("Ada", "say"))
		Expect(err).ToNot(HaveOccurred())
		Expect(resp.StatusCode()).To(Equal(http.StatusNoContent))

		resp, err = client.R().SetBody(map[string]string{"text": "it was Cog"}).Post(botURL("Bit", "last-will"))
		Expect(err).ToNot(HaveOccurred())
		Expect(resp.StatusCode()).To(Equal(http.StatusNoContent))
		Expect(view("Bit").LastWill).To(Equal("it was Cog"))
	})

	It("refuses duplicate names and late joins", func() {
		resp, err := client.R().SetBody(map[string]string{"name": "Ada"}).Post(fmt.Sprintf("/games/%s/bots", gameID))
		Expect(err).ToNot(HaveOccurred())
		Expect(resp.StatusCode()).To(Equal(http.StatusCreated))

		resp, err = client.R().SetBody(map[string]string{"name": "ada"}).Post(fmt.Sprintf("/games/%s/bots", gameID))
		Expect(err).ToNot(HaveOccurred())
		Expect(resp.StatusCode()).To(Equal(http.StatusConflict))

		resp, err = client.R().SetBody(map[string]string{}).Post(fmt.Sprintf("/games/%s/bots", gameID))
		Expect(err).ToNot(HaveOccurred())
		Expect(resp.StatusCode()).To(Equal(http.StatusBadRequest))

		resp, err = client.R().Post(fmt.Sprintf("/games/%s/start", gameID))
		Expect(err).ToNot(HaveOccurred())
		Expect(resp.StatusCode()).To(Equal(http.StatusConflict), "one bot is not enough")
	})

	It("guards bot endpoints", func() {
		resp, err := client.R().Get("/games/unknown/bots/Ada/view")
		Expect(err).ToNot(HaveOccurred())
		Expect(resp.StatusCode()).To(Equal(http.StatusNotFound))

		resp, err = client.R().Post(botURL("Ada", "skip-vote"))
		Expect(err).ToNot(HaveOccurred())
		Expect(resp.StatusCode()).To(Equal(http.StatusConflict), "the game has not started")

		seatAndStart()
		resp, err = client.R().Get(botURL("Mallory", "view"))
		Expect(err).ToNot(HaveOccurred())
		Expect(resp.StatusCode()).To(Equal(http.StatusForbidden))
	})
})
