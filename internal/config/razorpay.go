package config

// Razorpay configures the checkout integration: the public key the dialog is
// opened with and the backend that creates and verifies orders.
type Razorpay struct {
	Key          string `env:"RAZORPAY_KEY" envDefault:"rzp_test_your_key_here"`
	ScriptURL    string `env:"RAZORPAY_SCRIPT_URL" envDefault:"https://checkout.razorpay.com/v1/checkout.js"`
	BackendURL   string `env:"PAYMENT_BACKEND_URL" envDefault:"http://localhost:3001/api/payment"`
	BackendToken string `env:"PAYMENT_BACKEND_TOKEN" json:"-"`
}
