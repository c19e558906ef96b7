package crapsv1

// Nil-safe accessors in the style of generated messages. Interceptors use them
// to read the scope of a request without knowing its concrete type.

func (x *InitializeDeploymentRequest) GetDeploymentID() string {
	if x == nil {
		return ""
	}
	return x.DeploymentID
}

func (x *UpdateDeploymentRequest) GetDeploymentID() string {
	if x == nil {
		return ""
	}
	return x.DeploymentID
}

func (x *SetDeploymentFrozenRequest) GetDeploymentID() string {
	if x == nil {
		return ""
	}
	return x.DeploymentID
}

func (x *GetDeploymentRequest) GetDeploymentID() string {
	if x == nil {
		return ""
	}
	return x.DeploymentID
}

func (x *FundAccountRequest) GetDeploymentID() string {
	if x == nil {
		return ""
	}
	return x.DeploymentID
}

func (x *FundAccountRequest) GetAccount() string {
	if x == nil {
		return ""
	}
	return x.Account
}

func (x *GetBalanceRequest) GetAccount() string {
	if x == nil {
		return ""
	}
	return x.Account
}

func (x *CreateGameRequest) GetDeploymentID() string {
	if x == nil {
		return ""
	}
	return x.DeploymentID
}

func (x *CreateGameRequest) GetGameID() string {
	if x == nil {
		return ""
	}
	return x.GameID
}

func (x *JoinGameRequest) GetDeploymentID() string {
	if x == nil {
		return ""
	}
	return x.DeploymentID
}

func (x *JoinGameRequest) GetGameID() string {
	if x == nil {
		return ""
	}
	return x.GameID
}

func (x *RequestRollRequest) GetDeploymentID() string {
	if x == nil {
		return ""
	}
	return x.DeploymentID
}

func (x *RequestRollRequest) GetGameID() string {
	if x == nil {
		return ""
	}
	return x.GameID
}

func (x *RetryRollRequest) GetDeploymentID() string {
	if x == nil {
		return ""
	}
	return x.DeploymentID
}

func (x *RetryRollRequest) GetGameID() string {
	if x == nil {
		return ""
	}
	return x.GameID
}

func (x *ConsumeRandomnessRequest) GetDeploymentID() string {
	if x == nil {
		return ""
	}
	return x.DeploymentID
}

func (x *ConsumeRandomnessRequest) GetGameID() string {
	if x == nil {
		return ""
	}
	return x.GameID
}

func (x *GameRequest) GetDeploymentID() string {
	if x == nil {
		return ""
	}
	return x.DeploymentID
}

func (x *GameRequest) GetGameID() string {
	if x == nil {
		return ""
	}
	return x.GameID
}

func (x *ListGamesRequest) GetDeploymentID() string {
	if x == nil {
		return ""
	}
	return x.DeploymentID
}

func (x *ListGameEventsRequest) GetDeploymentID() string {
	if x == nil {
		return ""
	}
	return x.DeploymentID
}

func (x *ListGameEventsRequest) GetGameID() string {
	if x == nil {
		return ""
	}
	return x.GameID
}
