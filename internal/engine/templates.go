package engine

const malariaBody = `## Malaria Symptoms 🦟

**Common symptoms of malaria include:**

- **Fever** - High temperature that may come and go in cycles
- **Chills** - Intense cold feelings followed by sweating
- **Headache** - Severe headaches that persist
- **Muscle aches** - Body pain and weakness
- **Fatigue** - Extreme tiredness and lack of energy
- **Nausea and vomiting** - Digestive issues

**Prevention tips:**
- Use mosquito nets while sleeping
- Apply mosquito repellent
- Wear long-sleeved clothing during peak mosquito hours
- Eliminate standing water around your home

⚠️ **Important:** If you experience these symptoms, especially after traveling to malaria-prone areas, consult a healthcare professional immediately.`

const vaccinationBody = `## Vaccination Schedule 💉

**Child Vaccination Timeline:**

| Age | Vaccine | Disease Prevention |
|-----|---------|-------------------|
| Birth | BCG, OPV-0, Hepatitis B-1 | Tuberculosis, Polio, Hepatitis B |
| 6 weeks | OPV-1, Pentavalent-1 | Polio, DPT, Hib, Hepatitis B |
| 10 weeks | OPV-2, Pentavalent-2 | Continued immunity |
| 14 weeks | OPV-3, Pentavalent-3, IPV-1 | Polio, DPT, Hib, Hepatitis B |
| 9 months | Measles-1, JE-1 | Measles, Japanese Encephalitis |

**Adult Vaccinations:**
- **COVID-19**: Follow government guidelines for boosters
- **Influenza**: Annual vaccination recommended
- **Tetanus**: Every 10 years

✅ **Government Integration:** This schedule is synced with national immunization programs.`

const preventionBody = `## Preventive Healthcare Tips 🛡️

**Daily Health Practices:**

### Personal Hygiene
- Wash hands frequently with soap for 20 seconds
- Use alcohol-based hand sanitizer when soap unavailable
- Cover mouth and nose when coughing/sneezing
- Avoid touching face with unwashed hands

### Environmental Cleanliness
- Keep surroundings clean and dry
- Ensure proper ventilation in living spaces
- Dispose of garbage properly
- Maintain clean water storage

### Nutrition & Lifestyle
- Eat balanced diet with fruits and vegetables
- Drink clean, purified water
- Get adequate sleep (7-8 hours)
- Exercise regularly

### Community Health
- Report unusual health patterns to local health workers
- Participate in community health programs
- Stay informed about local health advisories

🏥 **Remember:** Prevention is always better than cure!`

// FallbackBody is returned when no trigger matches.
const FallbackBody = "Thank you for your question! 🤖\n\n" +
	"I'm here to help with healthcare information, including:\n" +
	"- **Disease symptoms** and identification\n" +
	"- **Vaccination schedules** and reminders  \n" +
	"- **Preventive measures** for common illnesses\n" +
	"- **Health alerts** and outbreak information\n" +
	"- **Government health programs** in your area\n\n" +
	"Could you please be more specific about what health topic you'd like to know about? For example:\n" +
	"- \"What are dengue symptoms?\"\n" +
	"- \"When is my child's next vaccination?\"\n" +
	"- \"How to prevent seasonal flu?\"\n\n" +
	"I'm connected to government health databases to provide you with the most current and reliable information."

// UnavailableBody is logged as the bot reply when a responder fails.
const UnavailableBody = "Sorry, I couldn't put together an answer right now. Please try again in a moment."
