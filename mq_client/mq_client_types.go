package mq_client

type Exchange struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

type Queue struct {
	Name    string `yaml:"name"`
	Durable bool   `yaml:"durable"`
}

type Binding struct {
	Queue      string `yaml:"queue"`
	CleanStart bool   `yaml:"clean_start"`
	Exchange   string `yaml:"exchange"`
}

type Channel struct {
	Prefetch int `yaml:"prefetch"`
}

type MQClientConfig struct {
	Exchange struct {
		Income       Exchange `yaml:"income"`
		Notification Exchange `yaml:"notification"`
		Events       Exchange `yaml:"events"`
		Engine       Exchange `yaml:"engine"`
	}
	Queue struct {
		RegistrationProcessor Queue `yaml:"registration_processor"`
		PurchaseProcessor     Queue `yaml:"purchase_processor"`
		IncomeExecutor        Queue `yaml:"income_executor"`
		InfluxWriter          Queue `yaml:"influx_writer"`
		EventsProcessor       Queue `yaml:"events_processor"`
	}
	Binding struct {
		RegistrationProcessor Binding `yaml:"registration_processor"`
		PurchaseProcessor     Binding `yaml:"purchase_processor"`
		IncomeExecutor        Binding `yaml:"income_executor"`
		InfluxWriter          Binding `yaml:"influx_writer"`
		EventsProcessor       Binding `yaml:"events_processor"`
	}
	Channel struct {
		RegistrationProcessor Channel `yaml:"registration_processor"`
		PurchaseProcessor     Channel `yaml:"purchase_processor"`
		IncomeExecutor        Channel `yaml:"income_executor"`
	}
}
