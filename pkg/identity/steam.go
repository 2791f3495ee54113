package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

const DefaultSteamEndpoint = "https://partner.steam-api.com/ISteamUserAuth/AuthenticateUserTicket/v1/"

type SteamVerifierParams struct {
	APIKey string
	AppID  uint32
	// Endpoint overrides DefaultSteamEndpoint.
	Endpoint string
	Client   *http.Client
}

// SteamVerifier checks session tickets against the Steam Web API.
type SteamVerifier struct {
	params SteamVerifierParams
}

func NewSteamVerifier(params SteamVerifierParams) *SteamVerifier {
	if params.Endpoint == "" {
		params.Endpoint = DefaultSteamEndpoint
	}
	if params.Client == nil {
		params.Client = http.DefaultClient
	}
	return &SteamVerifier{params: params}
}

type authenticateTicketResponse struct {
	Response struct {
		Params *struct {
			Result          string `json:"result"`
			SteamID         string `json:"steamid"`
			OwnerSteamID    string `json:"ownersteamid"`
			VacBanned       bool   `json:"vacbanned"`
			PublisherBanned bool   `json:"publisherbanned"`
		} `json:"params"`
		Error *struct {
			ErrorCode int    `json:"errorcode"`
			ErrorDesc string `json:"errordesc"`
		} `json:"error"`
	} `json:"response"`
}

func (v *SteamVerifier) Authenticate(ctx context.Context, externalID, ticket string) (Identity, error) {
	if externalID == "" || ticket == "" {
		return Identity{}, ErrMissingCredentials
	}

	q := url.Values{}
	q.Set("key", v.params.APIKey)
	q.Set("appid", strconv.FormatUint(uint64(v.params.AppID), 10))
	q.Set("ticket", ticket)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.params.Endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return Identity{}, fmt.Errorf("build steam request: %w", err)
	}

	resp, err := v.params.Client.Do(req)
	if err != nil {
		return Identity{}, fmt.Errorf("steam request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Identity{}, &RejectedError{ExternalID: externalID, Reason: "steam responded " + resp.Status}
	}

	var body authenticateTicketResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Identity{}, fmt.Errorf("decode steam response: %w", err)
	}

	if body.Response.Error != nil {
		return Identity{}, &RejectedError{ExternalID: externalID, Reason: body.Response.Error.ErrorDesc}
	}
	params := body.Response.Params
	if params == nil || params.Result != "OK" {
		return Identity{}, &RejectedError{ExternalID: externalID, Reason: "ticket not accepted"}
	}
	if params.SteamID != externalID {
		return Identity{}, &RejectedError{ExternalID: externalID, Reason: "ticket belongs to another account"}
	}

	return Identity{ExternalID: params.SteamID}, nil
}
